package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavelanni/studyhub/internal/calc"
	"github.com/pavelanni/studyhub/internal/cli"
	"github.com/pavelanni/studyhub/internal/contact"
	"github.com/pavelanni/studyhub/internal/content"
	"github.com/pavelanni/studyhub/internal/handler"
	appI18n "github.com/pavelanni/studyhub/internal/i18n"
	"github.com/pavelanni/studyhub/internal/metrics"
	"github.com/pavelanni/studyhub/internal/model"
	"github.com/pavelanni/studyhub/internal/quiz"
	"github.com/pavelanni/studyhub/internal/session"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "studyhub",
		Short: "Statics study site with health calculators",
	}

	serve := serveCmd()
	root.AddCommand(serve, calcCmd(), quizCmd(), questionsCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `studyhub --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.StringP("lang", "l", "en", "Fallback UI language (en, ru)")
	f.String("base-path", "", "URL prefix for sub-path deployments (e.g. /hub)")
	f.Bool("secure-cookies", true, "Set Secure flag on cookies")
	f.Duration("session-ttl", session.DefaultTTL, "Idle time before a visitor's state is dropped")
	f.Duration("contact-delay", contact.DefaultDelay, "Simulated send time of the contact form")
	f.StringP("questions", "q", "", "Questions JSON file replacing the built-in quiz")
	f.Bool("metrics", true, "Serve Prometheus metrics at /metrics")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run a calculator in the terminal",
	}

	bmi := &cobra.Command{
		Use:   "bmi",
		Short: "Body Mass Index",
		RunE:  runCalc(calc.KindBMI),
	}
	bmi.Flags().String(calc.FieldHeight, "", "Height in cm")
	bmi.Flags().String(calc.FieldWeight, "", "Weight in kg")

	bmr := &cobra.Command{
		Use:   "bmr",
		Short: "Basal Metabolic Rate and daily calories",
		RunE:  runCalc(calc.KindBMR),
	}
	bmr.Flags().String(calc.FieldAge, "", "Age in years")
	bmr.Flags().String(calc.FieldSex, "", "Sex (male, female)")
	bmr.Flags().String(calc.FieldWeight, "", "Weight in kg")
	bmr.Flags().String(calc.FieldHeight, "", "Height in cm")
	bmr.Flags().String(calc.FieldActivity, "", activityHelp())

	dosage := &cobra.Command{
		Use:   "dosage",
		Short: "Weight-based medication dose",
		RunE:  runCalc(calc.KindDosage),
	}
	dosage.Flags().String(calc.FieldWeight, "", "Patient weight in kg")
	dosage.Flags().String("dose", "", "Dose per kg in mg/kg")
	dosage.Flags().String(calc.FieldMedication, "", "Medication name (display only)")

	for _, c := range []*cobra.Command{bmi, bmr, dosage} {
		c.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
		c.Flags().String("log-format", "text", "Log format (text, json)")
	}
	cmd.AddCommand(bmi, bmr, dosage)
	return cmd
}

func activityHelp() string {
	var b strings.Builder
	b.WriteString("Activity multiplier, one of:")
	for _, a := range calc.ActivityLevels {
		fmt.Fprintf(&b, "\n  %s  %s", a, a.Label())
	}
	return b.String()
}

func quizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take the quiz in the terminal",
		RunE:  runQuiz,
	}
	f := cmd.Flags()
	f.StringP("questions", "q", "", "Questions JSON file replacing the built-in quiz")
	f.String("result-file", "", "Write the finished attempt as JSON to this file")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func questionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Export the quiz questions as JSON",
		RunE:  runQuestions,
	}
	f := cmd.Flags()
	f.StringP("questions", "q", "", "Questions JSON file replacing the built-in quiz")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.Bool("table", false, "Print a table instead of JSON")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("STUDYHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("studyhub")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/studyhub")
	v.AddConfigPath("/etc/studyhub")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// loadBank reads the question bank from path, or returns the built-in one.
func loadBank(path string) (*quiz.Bank, error) {
	if path == "" {
		return quiz.DefaultBank(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	bank, err := quiz.ParseBank(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	slog.Info("loaded questions", "path", path, "count", bank.Len())
	return bank, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	// Initialize i18n.
	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	lib, err := content.Load()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	bank, err := loadBank(v.GetString("questions"))
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}

	// Normalize base path.
	basePath := strings.TrimRight(v.GetString("base-path"), "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	siteCfg := model.SiteConfig{
		Lang:          lang,
		BasePath:      basePath,
		SecureCookies: v.GetBool("secure-cookies"),
		SessionTTL:    v.GetDuration("session-ttl"),
		ContactDelay:  v.GetDuration("contact-delay"),
		Metrics:       v.GetBool("metrics"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewRegistry(siteCfg.SessionTTL, func() *session.Visitor {
		return session.NewVisitor(bank, siteCfg.ContactDelay)
	})
	if siteCfg.Metrics {
		metrics.Register(sessions.Len)
	}
	go sessions.Sweep(ctx, time.Minute)

	h, err := handler.New(lib, sessions, siteCfg)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))

	if basePath != "" {
		r.Route(basePath, func(sub chi.Router) {
			sub.Use(h.BasePathMiddleware)
			h.Routes(sub)
		})
		r.Get(basePath, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, basePath+"/", http.StatusMovedPermanently)
		})
	} else {
		r.Use(h.BasePathMiddleware)
		h.Routes(r)
	}

	addr := v.GetString("addr")
	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("starting server",
		"addr", addr,
		"lang", lang,
		"base_path", basePath,
		"questions", bank.Len(),
		"session_ttl", siteCfg.SessionTTL,
		"metrics", siteCfg.Metrics,
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func runCalc(kind calc.Kind) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		setupLogging(cmd)
		v := viperForCmd(cmd)

		form := calc.NewForm(kind)
		for _, field := range form.Fields() {
			flag := field
			if field == calc.FieldDosePerKg {
				flag = "dose"
			}
			if err := form.Set(field, v.GetString(flag)); err != nil {
				return err
			}
		}
		return cli.PrintResult(cmd.OutOrStdout(), form.Result(), form.Medication())
	}
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	bank, err := loadBank(v.GetString("questions"))
	if err != nil {
		return err
	}

	res, err := cli.RunQuiz(cmd.InOrStdin(), cmd.OutOrStdout(), bank)
	if err != nil {
		return err
	}

	path := v.GetString("result-file")
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(cli.NewAttemptExport(res, time.Now().UTC()), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	slog.Info("wrote quiz result", "path", path)
	return nil
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	bank, err := loadBank(v.GetString("questions"))
	if err != nil {
		return err
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = cmd.OutOrStdout()
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if v.GetBool("table") {
		return cli.PrintQuestions(w, bank)
	}

	data, err := json.MarshalIndent(cli.NewBankExport("Engineering Statics", bank), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)

	return nil
}
