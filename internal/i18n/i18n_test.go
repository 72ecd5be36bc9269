package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	loc := NewLocalizer(lang)
	return WithLocalizer(context.Background(), loc)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "CategoryNormal")
	if got != "Normal weight" {
		t.Errorf("T(CategoryNormal) = %q, want 'Normal weight'", got)
	}

	got = T(ctx, "ShowAnswer")
	if got != "Show Answer" {
		t.Errorf("T(ShowAnswer) = %q, want 'Show Answer'", got)
	}
}

func TestTranslateRussian(t *testing.T) {
	ctx := initLang(t, "ru")

	got := T(ctx, "CategoryObese")
	if got != "Ожирение" {
		t.Errorf("T(CategoryObese) = %q, want 'Ожирение'", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	if got := Tp(ctx, "FormulasCount", 1); got != "1 formula" {
		t.Errorf("Tp(FormulasCount, 1) = %q, want '1 formula'", got)
	}
	if got := Tp(ctx, "FormulasCount", 24); got != "24 formulas" {
		t.Errorf("Tp(FormulasCount, 24) = %q, want '24 formulas'", got)
	}

	ctx = initLang(t, "ru")
	if got := Tp(ctx, "FormulasCount", 24); got != "24 формулы" {
		t.Errorf("Tp(FormulasCount, 24) = %q, want '24 формулы'", got)
	}
	if got := Tp(ctx, "FormulasCount", 5); got != "5 формул" {
		t.Errorf("Tp(FormulasCount, 5) = %q, want '5 формул'", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "QuestionNofM", map[string]any{"Current": 2, "Total": 5})
	if got != "Question 2 of 5" {
		t.Errorf("Td(QuestionNofM) = %q, want 'Question 2 of 5'", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestMatch(t *testing.T) {
	initLang(t, "en")

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"nothing", nil, "en"},
		{"plain code", []string{"ru"}, "ru"},
		{"accept header", []string{"ru-RU,ru;q=0.9,en;q=0.8"}, "ru"},
		{"unsupported falls back", []string{"de"}, "en"},
		{"garbage ignored", []string{"!!", "ru"}, "ru"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.prefs...); got != tt.want {
				t.Errorf("Match(%v) = %q, want %q", tt.prefs, got, tt.want)
			}
		})
	}
}

func TestMiddlewarePicksLanguage(t *testing.T) {
	initLang(t, "en")

	var got string
	h := Middleware("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "NavQuiz")
	}))

	req := httptest.NewRequest(http.MethodGet, "/?lang=ru", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got != "Тест" {
		t.Errorf("with ?lang=ru got %q, want 'Тест'", got)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "ru" {
		t.Errorf("expected lang cookie 'ru', got %v", cookies)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "de-DE")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "Quiz" {
		t.Errorf("with unsupported Accept-Language got %q, want 'Quiz'", got)
	}
}
