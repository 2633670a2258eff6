package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/logistics-backoffice/internal/admin"
	"github.com/logistics-backoffice/internal/config"
	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/handler"
	"github.com/logistics-backoffice/internal/repository"
	"github.com/logistics-backoffice/internal/service"
	"github.com/logistics-backoffice/internal/session"
	"github.com/logistics-backoffice/internal/storage"
	"github.com/logistics-backoffice/internal/testutil"
	"github.com/logistics-backoffice/internal/validation"
)

type testEnv struct {
	db        *gorm.DB
	server    *httptest.Server
	mediaRoot string
}

// newTestEnv поднимает сервер на sqlite. wrapStore подменяет хранилище сессий.
func newTestEnv(t *testing.T, wrapStore ...func(session.Store) session.Store) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	logger := testutil.NopLogger()
	v := validation.New()
	mediaRoot := filepath.Join(t.TempDir(), "media")

	var store session.Store = session.NewGormStore(db)
	for _, wrap := range wrapStore {
		store = wrap(store)
	}
	sessions := session.NewManager(store, config.SessionConfig{
		CookieName: "sessionid",
		TTL:        time.Hour,
	})
	files, err := storage.NewLocalStorage(mediaRoot)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	registry := admin.Default()
	userRepo := repository.NewUserRepository(db)
	empService := service.NewEmployeeService(repository.NewEmployeeRepository(db))
	deptService := service.NewDepartmentService(repository.NewDepartmentRepository(db))
	authService := service.NewAuthService(userRepo, logger)
	refService := service.NewReferenceService(repository.NewReferenceRepository(db))
	adminService := service.NewAdminService(registry, repository.NewAdminRepository(db, registry), v)

	router := handler.NewRouter(
		handler.RouterConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			DefaultLocale:  language.English,
			AdminLocale:    language.Ukrainian,
			MediaRoot:      mediaRoot,
			MediaURL:       "/media/",
		},
		sessions,
		userRepo,
		handler.NewAuthHandler(authService, empService, sessions, v, "/media/", logger),
		handler.NewDictionaryHandler(refService, logger),
		handler.NewEmployeeHandler(empService, deptService, "/media/", logger),
		handler.NewAdminHandler(adminService, deptService, empService, files, "/media/", logger),
		logger,
	)

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)

	return &testEnv{db: db, server: server, mediaRoot: mediaRoot}
}

// client браузер с cookie, который отправляет CSRF-токен как фронтенд
type client struct {
	t    *testing.T
	base *url.URL
	http *http.Client
	// header добавляется к каждому запросу, как у клиента за прокси
	header http.Header
}

func (e *testEnv) client(t *testing.T) *client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	base, _ := url.Parse(e.server.URL)
	return &client{t: t, base: base, http: &http.Client{Jar: jar}}
}

func (c *client) cookie(name string) string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

func (c *client) do(method, path, contentType string, body io.Reader) *http.Response {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base.String()+path, body)
	if err != nil {
		c.t.Fatalf("failed to build request: %v", err)
	}
	for name, values := range c.header {
		req.Header[name] = values
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.cookie(session.CSRFCookieName); token != "" {
		req.Header.Set(session.CSRFHeaderName, token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	c.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (c *client) get(path string) *http.Response {
	return c.do(http.MethodGet, path, "", nil)
}

func (c *client) send(method, path string, body any) *http.Response {
	c.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			c.t.Fatalf("failed to encode body: %v", err)
		}
	}
	return c.do(method, path, "application/json", &buf)
}

// login получает CSRF-токен и входит
func (c *client) login(username, password string) *http.Response {
	c.t.Helper()
	if resp := c.get("/api/csrf-token/"); resp.StatusCode != http.StatusOK {
		c.t.Fatalf("csrf-token: expected status 200, got %d", resp.StatusCode)
	}
	return c.send(http.MethodPost, "/api/login/", map[string]string{"username": username, "password": password})
}

func (c *client) mustLogin(username, password string) {
	c.t.Helper()
	if resp := c.login(username, password); resp.StatusCode != http.StatusOK {
		c.t.Fatalf("login %s: expected status 200, got %d", username, resp.StatusCode)
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func expectStatus(t *testing.T, resp *http.Response, status int) {
	t.Helper()
	if resp.StatusCode != status {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: expected status %d, got %d: %s",
			resp.Request.Method, resp.Request.URL.Path, status, resp.StatusCode, body)
	}
}

func strPtr(s string) *string {
	return &s
}

func datePtr(y int, m time.Month, d int) *domain.Date {
	date := domain.NewDate(y, m, d)
	return &date
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.client(t).get("/health")
	expectStatus(t, resp, http.StatusOK)
	if body := decode[map[string]string](t, resp); body["status"] != "ok" {
		t.Errorf("unexpected body %v", body)
	}
}
