package i18n

import (
	"context"
	"net/http"
)

// LangCookie remembers a language picked with ?lang=.
const LangCookie = "lang"

// Middleware picks a language per request: an explicit ?lang= (remembered
// in a cookie), then the cookie, then Accept-Language, then fallback.
func Middleware(fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var prefs []string
			if q := r.URL.Query().Get("lang"); q != "" {
				prefs = append(prefs, q)
			}
			if c, err := r.Cookie(LangCookie); err == nil {
				prefs = append(prefs, c.Value)
			}
			prefs = append(prefs, r.Header.Get("Accept-Language"), fallback)

			lang := Match(prefs...)
			if q := r.URL.Query().Get("lang"); q != "" && q == lang {
				http.SetCookie(w, &http.Cookie{
					Name:     LangCookie,
					Value:    lang,
					Path:     "/",
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithLocalizer(r.Context(), NewLocalizer(lang))
			ctx = context.WithValue(ctx, langCtxKey{}, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
