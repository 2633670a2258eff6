package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/logistics-backoffice/internal/i18n"
)

// AdminPrefix путь, под которым смонтирована админка
const AdminPrefix = "/admin"

// Locale активирует язык на время запроса: для путей админки фиксированный,
// для остальных язык по умолчанию
func Locale(defaultLang, adminLang language.Tag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := defaultLang
			if strings.HasPrefix(r.URL.Path, AdminPrefix) {
				tag = adminLang
			}
			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(i18n.WithLocale(r.Context(), tag)))
		})
	}
}
