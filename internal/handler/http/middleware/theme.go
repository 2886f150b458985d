package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/colorutil"
)

type themeKey struct{}

const (
	ThemeQueryParam = "theme"
	ThemeHeader     = "X-Theme"
	ThemeCookie     = "theme"
)

// Theme resolves the caller's theme from the query string, then the X-Theme
// header, then the theme cookie, and stores it in the request context.
func Theme(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get(ThemeQueryParam)
		if strings.TrimSpace(name) == "" {
			name = r.Header.Get(ThemeHeader)
		}
		if strings.TrimSpace(name) == "" {
			if c, err := r.Cookie(ThemeCookie); err == nil {
				name = c.Value
			}
		}

		ctx := context.WithValue(r.Context(), themeKey{}, colorutil.ParseTheme(name))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ThemeFromContext returns the theme stored by Theme, or the light theme.
func ThemeFromContext(ctx context.Context) colorutil.ThemeContext {
	if theme, ok := ctx.Value(themeKey{}).(colorutil.ThemeContext); ok {
		return theme
	}
	return colorutil.LightTheme()
}
