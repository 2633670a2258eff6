package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/session"
)

type userKey struct{}

// UserLoader загружает пользователя сессии вместе с правами
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// WithUser кладёт пользователя в контекст запроса
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// CurrentUser возвращает аутентифицированного пользователя или nil
func CurrentUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey{}).(*domain.User)
	return user
}

// Authenticate восстанавливает пользователя по сессионной cookie.
// Запрос без сессии проходит дальше анонимным.
func Authenticate(sessions *session.Manager, users UserLoader, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := sessions.Load(r.Context(), r)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					logger.Error("failed to load session", slog.Any("error", err))
				}
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), data.UserID)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					logger.Error("failed to load session user", slog.Any("error", err), slog.Int64("user_id", data.UserID))
				}
				next.ServeHTTP(w, r)
				return
			}
			if !user.IsActive {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth отклоняет анонимные запросы
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission пропускает только пользователей с указанным правом
func RequirePermission(codename string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !CurrentUser(r.Context()).HasPerm(codename) {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "permission denied"})
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// RequireStaff пропускает только персонал с доступом к админке
func RequireStaff(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !CurrentUser(r.Context()).IsStaff {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "permission denied"})
			return
		}
		next.ServeHTTP(w, r)
	}))
}
