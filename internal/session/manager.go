package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/logistics-backoffice/internal/config"
)

// Имена cookie и заголовка для CSRF
const (
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"
)

var csrfTokenRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Manager выдаёт и отзывает сессионные cookie
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager создаёт менеджер сессий поверх хранилища
func NewManager(store Store, cfg config.SessionConfig) *Manager {
	return &Manager{
		store:      store,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.Secure,
	}
}

// Start открывает новую сессию пользователя. Прежний ключ из запроса удаляется.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request, userID int64) error {
	if old, err := r.Cookie(m.cookieName); err == nil && old.Value != "" {
		if err := m.store.Delete(ctx, old.Value); err != nil {
			return err
		}
	}

	key := strings.ReplaceAll(uuid.NewString(), "-", "")
	expiresAt := time.Now().Add(m.ttl)

	if err := m.store.Save(ctx, key, &Data{UserID: userID, ExpiresAt: expiresAt}); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    key,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load возвращает сессию из cookie запроса
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(ctx, cookie.Value)
}

// Destroy удаляет сессию из хранилища и просит клиента забыть cookie
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		if err := m.store.Delete(ctx, cookie.Value); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// IssueCSRF возвращает текущий CSRF-токен из cookie или выпускает новый
func (m *Manager) IssueCSRF(w http.ResponseWriter, r *http.Request) (string, error) {
	if token := CSRFTokenFromRequest(r); token != "" {
		return token, nil
	}
	return m.RotateCSRF(w)
}

// RotateCSRF выпускает новый CSRF-токен
func (m *Manager) RotateCSRF(w http.ResponseWriter) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// CSRFTokenFromRequest возвращает корректный токен из cookie или пустую строку
func CSRFTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil || !csrfTokenRegex.MatchString(cookie.Value) {
		return ""
	}
	return cookie.Value
}

// ValidCSRF сверяет токен из заголовка с токеном из cookie
func ValidCSRF(r *http.Request) bool {
	token := CSRFTokenFromRequest(r)
	header := r.Header.Get(CSRFHeaderName)
	if token == "" || header == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(header)) == 1
}
