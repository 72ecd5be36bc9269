package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/studyhub/internal/calc"
	"github.com/pavelanni/studyhub/internal/content"
	"github.com/pavelanni/studyhub/internal/handler/views"
	"github.com/pavelanni/studyhub/internal/metrics"
	"github.com/pavelanni/studyhub/internal/model"
	"github.com/pavelanni/studyhub/internal/session"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	content  *content.Library
	sessions *session.Registry
	config   model.SiteConfig
}

// New creates a new Handler.
func New(lib *content.Library, sessions *session.Registry, cfg model.SiteConfig) (*Handler, error) {
	return &Handler{content: lib, sessions: sessions, config: cfg}, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleHome)
	r.Get("/about", h.handleAbout)
	r.Get("/formulas", h.handleFormulas)
	r.Get("/applications", h.handleApplications)
	r.Get("/api/{kind}", h.handleAPI)

	r.Group(func(r chi.Router) {
		r.Use(h.csrfMiddleware)
		r.Use(h.visitorMiddleware)

		r.Get("/calculators/{kind}", h.handleCalculatorPage)
		r.Post("/calculators/{kind}", h.handleCalculatorUpdate)
		r.Post("/calculators/{kind}/reset", h.handleCalculatorReset)

		r.Get("/quiz", h.handleQuizPage)
		r.Post("/quiz/select", h.handleQuizSelect)
		r.Post("/quiz/reveal", h.handleQuizReveal)
		r.Post("/quiz/next", h.handleQuizNext)
		r.Post("/quiz/restart", h.handleQuizRestart)

		r.Get("/contact", h.handleContactPage)
		r.Post("/contact", h.handleContactSubmit)
	})

	if h.config.Metrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.NotFound(h.handleNotFound)
}

// BasePathMiddleware makes the deployment prefix available to views.
func (h *Handler) BasePathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// path prefixes an absolute site path with the base path.
func (h *Handler) path(p string) string {
	return h.config.BasePath + p
}

func (h *Handler) cookiePath() string {
	if h.config.BasePath != "" {
		return h.config.BasePath + "/"
	}
	return "/"
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.HomePage(h.content))
}

func (h *Handler) handleAbout(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.AboutPage(h.content))
}

func (h *Handler) handleFormulas(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.FormulasPage(h.content))
}

func (h *Handler) handleApplications(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.ApplicationsPage(h.content))
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, views.NotFoundPage())
}

// kindParam resolves the {kind} URL segment, answering 404 when unknown.
func (h *Handler) kindParam(w http.ResponseWriter, r *http.Request) (calc.Kind, bool) {
	kind, ok := calc.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		h.handleNotFound(w, r)
	}
	return kind, ok
}

func (h *Handler) handleCalculatorPage(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	v := visitorFromContext(r.Context())

	v.Lock()
	defer v.Unlock()
	h.render(w, r, http.StatusOK, views.CalculatorPage(v.Form(kind)))
}

// handleCalculatorUpdate applies whichever form fields were posted, one or
// many, and answers with the recomputed result.
func (h *Handler) handleCalculatorUpdate(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	v := visitorFromContext(r.Context())

	v.Lock()
	form := v.Form(kind)
	for _, field := range form.Fields() {
		if _, posted := r.PostForm[field]; !posted {
			continue
		}
		if err := form.Set(field, r.PostForm.Get(field)); err != nil {
			v.Unlock()
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	res := form.Result()
	medication := form.Medication()
	v.Unlock()

	metrics.IncCalculation(string(kind), res.Valid)
	if res.Warning {
		metrics.IncHighDoseWarning()
	}
	slog.Debug("calculator updated", "calculator", kind, "valid", res.Valid)

	if isHTMX(r) {
		h.render(w, r, http.StatusOK, views.ResultPanel(kind, res, medication))
		return
	}
	http.Redirect(w, r, h.path("/calculators/"+string(kind)), http.StatusSeeOther)
}

func (h *Handler) handleCalculatorReset(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	v := visitorFromContext(r.Context())

	v.Lock()
	v.Form(kind).Reset()
	v.Unlock()

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", h.path("/calculators/"+string(kind)))
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, h.path("/calculators/"+string(kind)), http.StatusSeeOther)
}

// handleAPI computes a result straight from query parameters. Incomplete
// input is a normal answer with valid=false, not an error.
func (h *Handler) handleAPI(w http.ResponseWriter, r *http.Request) {
	kind, ok := calc.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown calculator"})
		return
	}

	q := r.URL.Query()
	raw := make(map[string]string)
	for _, field := range calc.NewForm(kind).Fields() {
		raw[field] = q.Get(field)
	}
	res := calc.Compute(kind, raw)

	metrics.IncCalculation(string(kind), res.Valid)
	if res.Warning {
		metrics.IncHighDoseWarning()
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		slog.Error("write response", "error", err)
	}
}
