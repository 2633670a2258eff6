package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/middleware"
	"github.com/logistics-backoffice/internal/session"
)

// RouterConfig параметры маршрутизации и middleware
type RouterConfig struct {
	AllowedOrigins []string
	DefaultLocale  language.Tag
	AdminLocale    language.Tag
	MediaRoot      string
	MediaURL       string
}

// Router настраивает маршруты API
type Router struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	cfg        RouterConfig
	sessions   *session.Manager
	users      middleware.UserLoader
	auth       *AuthHandler
	dictionary *DictionaryHandler
	employees  *EmployeeHandler
	admin      *AdminHandler
}

// NewRouter создаёт новый роутер
func NewRouter(
	cfg RouterConfig,
	sessions *session.Manager,
	users middleware.UserLoader,
	auth *AuthHandler,
	dictionary *DictionaryHandler,
	employees *EmployeeHandler,
	admin *AdminHandler,
	logger *slog.Logger,
) *Router {
	return &Router{
		mux:        http.NewServeMux(),
		logger:     logger,
		cfg:        cfg,
		sessions:   sessions,
		users:      users,
		auth:       auth,
		dictionary: dictionary,
		employees:  employees,
		admin:      admin,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	authenticated := func(h http.HandlerFunc) http.Handler { return middleware.RequireAuth(h) }
	staff := func(h http.HandlerFunc) http.Handler { return middleware.RequireStaff(h) }

	// Аутентификация
	r.mux.HandleFunc("GET /api/csrf-token/{$}", r.auth.CSRFToken)
	r.mux.HandleFunc("POST /api/login/{$}", r.auth.Login)
	r.mux.HandleFunc("POST /api/logout/{$}", r.auth.Logout)
	r.mux.Handle("GET /api/current-user/{$}", authenticated(r.auth.CurrentUser))

	// Справочники
	r.mux.Handle("GET /dictionary/list/{$}", authenticated(r.dictionary.List))
	r.mux.Handle("GET /dictionary/all/{$}", authenticated(r.dictionary.All))
	r.mux.Handle("GET /dictionary/list/countries/{$}", authenticated(r.dictionary.Countries))
	r.mux.Handle("GET /dictionary/list/cities/{$}", authenticated(r.dictionary.Cities))
	r.mux.Handle("GET /dictionary/list/terminals/{$}", authenticated(r.dictionary.Terminals))
	r.mux.Handle("GET /dictionary/list/currencies/{$}", authenticated(r.dictionary.Currencies))
	r.mux.Handle("GET /dictionary/list/containers/{$}", authenticated(r.dictionary.Containers))
	r.mux.Handle("GET /dictionary/list/danger-classes/{$}", authenticated(r.dictionary.DangerClasses))
	r.mux.Handle("GET /dictionary/list/incoterms/{$}", authenticated(r.dictionary.Incoterms))
	r.mux.Handle("GET /dictionary/list/packaging-types/{$}", authenticated(r.dictionary.PackagingTypes))
	r.mux.Handle("GET /dictionary/list/delivery-types/{$}", authenticated(r.dictionary.DeliveryTypes))
	r.mux.Handle("GET /dictionary/list/cargos/{$}", authenticated(r.dictionary.Cargos))

	// Сотрудники
	r.mux.Handle("GET /dictionary/get_employees/{$}",
		middleware.RequirePermission(domain.PermViewEmployeesList)(http.HandlerFunc(r.employees.Employees)))
	r.mux.Handle("GET /dictionary/get_departments/{$}", authenticated(r.employees.Departments))

	// Админка
	r.mux.Handle("GET /admin/{$}", staff(r.admin.Index))
	r.mux.Handle("GET /admin/users/positions/{$}", staff(r.admin.Positions))
	r.mux.Handle("POST /admin/users/{id}/avatar/{$}", staff(r.admin.UploadAvatar))
	r.mux.Handle("GET /admin/{model}/{$}", staff(r.admin.List))
	r.mux.Handle("POST /admin/{model}/{$}", staff(r.admin.Create))
	r.mux.Handle("GET /admin/{model}/meta/{$}", staff(r.admin.Meta))
	r.mux.Handle("GET /admin/{model}/export/{$}", staff(r.admin.Export))
	r.mux.Handle("GET /admin/{model}/{id}/{$}", staff(r.admin.Get))
	r.mux.Handle("PUT /admin/{model}/{id}/{$}", staff(r.admin.Update))
	r.mux.Handle("DELETE /admin/{model}/{id}/{$}", staff(r.admin.Delete))

	// Загруженные файлы
	if r.cfg.MediaRoot != "" && r.cfg.MediaURL != "" {
		prefix := "/" + strings.Trim(r.cfg.MediaURL, "/") + "/"
		r.mux.Handle("GET "+prefix, http.StripPrefix(prefix, mediaHandler(r.cfg.MediaRoot)))
	}

	// Health check
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	return middleware.Chain(r.mux,
		middleware.Recoverer(r.logger),
		middleware.Logger(r.logger),
		middleware.CORS(r.cfg.AllowedOrigins),
		middleware.Locale(r.cfg.DefaultLocale, r.cfg.AdminLocale),
		middleware.ContentType,
		middleware.CSRF,
		middleware.Authenticate(r.sessions, r.users, r.logger),
	)
}

// mediaHandler раздаёт файлы из каталога media без листинга каталогов
func mediaHandler(root string) http.Handler {
	files := http.FileServer(http.Dir(root))
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "" || strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		// тип определяет FileServer по расширению
		w.Header().Del("Content-Type")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, req)
	})
}
