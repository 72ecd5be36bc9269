package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/studyhub/internal/calc"
	"github.com/pavelanni/studyhub/internal/content"
	appI18n "github.com/pavelanni/studyhub/internal/i18n"
	"github.com/pavelanni/studyhub/internal/model"
	"github.com/pavelanni/studyhub/internal/quiz"
	"github.com/pavelanni/studyhub/internal/session"
)

func newTestRouter(t *testing.T, cfg model.SiteConfig) (http.Handler, *session.Registry) {
	t.Helper()
	require.NoError(t, appI18n.Init("en"))

	lib, err := content.Load()
	require.NoError(t, err)

	bank := quiz.DefaultBank()
	reg := session.NewRegistry(time.Hour, func() *session.Visitor {
		return session.NewVisitor(bank, cfg.ContactDelay)
	})
	h, err := New(lib, reg, cfg)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(appI18n.Middleware("en"))
	r.Use(h.BasePathMiddleware)
	h.Routes(r)
	return r, reg
}

// browser replays cookies between requests like a real client would.
type browser struct {
	t       *testing.T
	h       http.Handler
	reg     *session.Registry
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, cfg model.SiteConfig) *browser {
	h, reg := newTestRouter(t, cfg)
	return &browser{t: t, h: h, reg: reg, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	if c, ok := b.cookies[csrfCookieName]; ok && !form.Has("csrf_token") {
		form.Set("csrf_token", c.Value)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return b.do(req)
}

func TestStaticPages(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})

	tests := []struct {
		path string
		want string
	}{
		{"/", "Smart Medical Calculator"},
		{"/about", "What is Engineering Statics?"},
		{"/formulas", "24 formulas"},
		{"/applications", "Case Studies"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := b.get(tt.path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Contains(t, rec.Body.String(), `<html lang="en">`)
		})
	}
}

func TestNotFound(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})

	assert.Equal(t, http.StatusNotFound, b.get("/nope").Code)
	assert.Equal(t, http.StatusNotFound, b.get("/calculators/ideal-weight").Code)
}

func TestCalculatorHTMXFragment(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})
	require.Equal(t, http.StatusOK, b.get("/calculators/bmi").Code)

	rec := b.post("/calculators/bmi", url.Values{"height": {"175"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter all values to see the result.")
	assert.NotContains(t, rec.Body.String(), "<html")

	rec = b.post("/calculators/bmi", url.Values{"weight": {"70"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="result"`)
	assert.Contains(t, body, "22.9")
	assert.Contains(t, body, "Normal weight")
}

func TestCalculatorFormPostRedirects(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})
	b.get("/calculators/bmr")

	rec := b.post("/calculators/bmr", url.Values{
		"age":      {"25"},
		"sex":      {"female"},
		"weight":   {"70"},
		"height":   {"175"},
		"activity": {"1.2"},
	}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/calculators/bmr", rec.Header().Get("Location"))

	body := b.get("/calculators/bmr").Body.String()
	assert.Contains(t, body, "1508 kcal/day")
	assert.Contains(t, body, "1809 kcal/day")
	assert.Contains(t, body, `value="175"`)
	assert.Contains(t, body, `<option value="female" selected>`)
}

func TestCalculatorHighDoseWarning(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})
	b.get("/calculators/dosage")

	rec := b.post("/calculators/dosage", url.Values{
		"medication":  {"Amoxicillin"},
		"weight":      {"70"},
		"dose_per_kg": {"10"},
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "700.00 mg")
	assert.Contains(t, body, "Amoxicillin")
	assert.Contains(t, body, "Very high dose - Verify calculation")
	assert.Contains(t, body, `role="alert"`)
}

func TestCalculatorReset(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})
	b.get("/calculators/bmi")
	b.post("/calculators/bmi", url.Values{"height": {"175"}, "weight": {"70"}}, false)
	require.Contains(t, b.get("/calculators/bmi").Body.String(), "22.9")

	rec := b.post("/calculators/bmi/reset", nil, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	body := b.get("/calculators/bmi").Body.String()
	assert.Contains(t, body, "Enter all values to see the result.")
	assert.NotContains(t, body, `value="175"`)
}

func TestCalculatorStateIsPerVisitor(t *testing.T) {
	cfg := model.SiteConfig{}
	a := newBrowser(t, cfg)
	a.get("/calculators/bmi")
	a.post("/calculators/bmi", url.Values{"height": {"175"}, "weight": {"70"}}, false)

	other := &browser{t: t, h: a.h, reg: a.reg, cookies: make(map[string]*http.Cookie)}
	body := other.get("/calculators/bmi").Body.String()
	assert.Contains(t, body, "Enter all values to see the result.")
}

func TestReadsDoNotRegisterVisitors(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})

	for range 50 {
		for _, path := range []string{"/quiz", "/contact", "/calculators/bmi"} {
			fresh := &browser{t: t, h: b.h, reg: b.reg, cookies: make(map[string]*http.Cookie)}
			rec := fresh.get(path)
			require.Equal(t, http.StatusOK, rec.Code)
			_, hasVisitor := fresh.cookies[visitorCookieName]
			require.False(t, hasVisitor)
		}
	}
	assert.Zero(t, b.reg.Len())

	b.get("/quiz")
	require.Equal(t, http.StatusSeeOther, b.post("/quiz/select", url.Values{"option": {"1"}}, false).Code)
	assert.Equal(t, 1, b.reg.Len())
	require.Contains(t, b.cookies, visitorCookieName)

	b.get("/quiz")
	b.post("/quiz/reveal", nil, false)
	assert.Equal(t, 1, b.reg.Len())
	assert.Contains(t, b.get("/quiz").Body.String(), "Explanation")
}

func TestRejectedPostDoesNotRegisterVisitor(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})
	rec := b.post("/calculators/bmi", url.Values{"height": {"175"}}, true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, b.reg.Len())
}

func TestCSRFRejected(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})
	b.get("/calculators/bmi")

	t.Run("wrong token", func(t *testing.T) {
		rec := b.post("/calculators/bmi", url.Values{"csrf_token": {"forged"}, "height": {"175"}}, true)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no cookie", func(t *testing.T) {
		fresh := &browser{t: t, h: b.h, reg: b.reg, cookies: make(map[string]*http.Cookie)}
		rec := fresh.post("/quiz/restart", nil, false)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/calculators/bmi", strings.NewReader("height=180"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("HX-Request", "true")
		req.Header.Set(csrfHeaderName, b.cookies[csrfCookieName].Value)
		rec := b.do(req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAPI(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})

	tests := []struct {
		name      string
		path      string
		wantValid bool
		wantValue float64
		wantCat   calc.Category
	}{
		{"bmi", "/api/bmi?height=175&weight=70", true, 22.9, calc.CategoryNormal},
		{"bmi zero height", "/api/bmi?height=0&weight=70", false, 0, ""},
		{"bmr male", "/api/bmr?age=25&sex=male&weight=70&height=175&activity=1.2", true, 1674, ""},
		{"bmr bad activity", "/api/bmr?age=25&sex=male&weight=70&height=175&activity=1.3", false, 0, ""},
		{"dosage", "/api/dosage?weight=70&dose_per_kg=5", true, 350, calc.CategoryHighDose},
		{"dosage missing", "/api/dosage?weight=70", false, 0, ""},
		{"bmi overflow", "/api/bmi?height=1e-200&weight=70", false, 0, ""},
		{"dosage overflow", "/api/dosage?weight=1e200&dose_per_kg=1e200", false, 0, ""},
		{"bmr past int range", "/api/bmr?age=25&sex=male&weight=1e300&height=175&activity=1.2", false, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := b.get(tt.path)
			require.Equal(t, http.StatusOK, rec.Code)

			var res calc.Result
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
			assert.Equal(t, tt.wantValid, res.Valid)
			assert.InDelta(t, tt.wantValue, res.Value, 1e-9)
			assert.Equal(t, tt.wantCat, res.Category)
		})
	}

	t.Run("bmr daily calories", func(t *testing.T) {
		var res calc.Result
		rec := b.get("/api/bmr?age=25&sex=male&weight=70&height=175&activity=1.2")
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		require.Len(t, res.Secondary, 1)
		assert.Equal(t, "daily_calories", res.Secondary[0].Name)
		assert.InDelta(t, 2009, res.Secondary[0].Value, 1e-9)
	})

	t.Run("unknown calculator", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, b.get("/api/ideal-weight").Code)
	})
}

func TestQuizFlow(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{})
	body := b.get("/quiz").Body.String()
	require.Contains(t, body, "Question 1 of 5")

	rec := b.post("/quiz/reveal", nil, false)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "That action is not available right now.")

	rec = b.post("/quiz/select", url.Values{"option": {"7"}}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.post("/quiz/select", url.Values{"option": {"first"}}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bank := quiz.DefaultBank()
	for i, q := range bank.Questions() {
		answer := q.Correct
		if i == 0 {
			answer = (q.Correct + 1) % quiz.OptionsPerQuestion
		}
		require.Equal(t, http.StatusSeeOther, b.post("/quiz/select", url.Values{"option": {strconv.Itoa(answer)}}, false).Code)
		require.Equal(t, http.StatusSeeOther, b.post("/quiz/reveal", nil, false).Code)

		page := b.get("/quiz").Body.String()
		assert.Contains(t, page, "Explanation")
		if i == 0 {
			assert.Contains(t, page, "Incorrect")
			assert.Equal(t, http.StatusConflict, b.post("/quiz/reveal", nil, false).Code)
		}
		require.Equal(t, http.StatusSeeOther, b.post("/quiz/next", nil, false).Code)
	}

	body = b.get("/quiz").Body.String()
	assert.Contains(t, body, "Quiz Complete!")
	assert.Contains(t, body, "4/5")
	assert.Contains(t, body, "80% Correct")
	assert.Contains(t, body, "Excellent work!")

	assert.Equal(t, http.StatusConflict, b.post("/quiz/next", nil, false).Code)

	require.Equal(t, http.StatusSeeOther, b.post("/quiz/restart", nil, false).Code)
	assert.Contains(t, b.get("/quiz").Body.String(), "Question 1 of 5")
}

func TestContact(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{ContactDelay: 10 * time.Millisecond})
	body := b.get("/contact").Body.String()
	require.Contains(t, body, "Frequently Asked Questions")

	rec := b.post("/contact", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please fill in every field.")
	assert.Contains(t, rec.Body.String(), `value="Ada"`)

	rec = b.post("/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Moments"},
		"message": {"How do I pick the pivot point?"},
	}, false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message sent successfully!")
	assert.NotContains(t, rec.Body.String(), `value="Ada"`)
}

func TestBasePath(t *testing.T) {
	b := newBrowser(t, model.SiteConfig{BasePath: "/hub"})
	b.get("/calculators/bmi")

	rec := b.post("/calculators/bmi", url.Values{"height": {"175"}}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/hub/calculators/bmi", rec.Header().Get("Location"))
	assert.Contains(t, b.get("/calculators/bmi").Body.String(), `action="/hub/calculators/bmi"`)
}
