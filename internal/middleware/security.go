package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/logistics-backoffice/internal/session"
)

// CSRF проверяет токен для изменяющих запросов
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			next.ServeHTTP(w, r)
			return
		}
		if !session.ValidCSRF(r) {
			writeJSON(w, http.StatusForbidden, map[string]string{"detail": "CSRF verification failed."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CORS разрешает фронтенду с перечисленных origin отправлять cookie
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowedHeaders := strings.Join([]string{"Content-Type", session.CSRFHeaderName}, ", ")
	allowedMethods := strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || !slices.Contains(allowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", allowedMethods)
				h.Set("Access-Control-Allow-Headers", allowedHeaders)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
