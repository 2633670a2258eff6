package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/logistics-backoffice/internal/admin"
	"github.com/logistics-backoffice/internal/handler"
	"github.com/logistics-backoffice/internal/i18n"
	"github.com/logistics-backoffice/internal/repository"
	"github.com/logistics-backoffice/internal/service"
	"github.com/logistics-backoffice/internal/session"
	"github.com/logistics-backoffice/internal/storage"
	"github.com/logistics-backoffice/internal/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Подключение к БД и миграции
	db, closeDB, err := openDB()
	if err != nil {
		logger.Error("failed to prepare database", slog.Any("error", err))
		return err
	}
	defer closeDB()

	registry := admin.Default()
	if err := syncPermissions(ctx, db, registry); err != nil {
		logger.Error("failed to sync permissions", slog.Any("error", err))
		return err
	}

	store, err := newSessionStore(ctx, db)
	if err != nil {
		logger.Error("failed to create session store", slog.Any("error", err))
		return err
	}
	sessions := session.NewManager(store, cfg.Session)

	files, err := storage.NewLocalStorage(cfg.Media.Root)
	if err != nil {
		logger.Error("failed to prepare media root", slog.String("path", cfg.Media.Root), slog.Any("error", err))
		return err
	}

	v := validation.New()

	// Инициализация репозиториев
	userRepo := repository.NewUserRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	refRepo := repository.NewReferenceRepository(db)
	adminRepo := repository.NewAdminRepository(db, registry)

	// Инициализация сервисов
	authService := service.NewAuthService(userRepo, logger)
	deptService := service.NewDepartmentService(deptRepo)
	empService := service.NewEmployeeService(empRepo)
	refService := service.NewReferenceService(refRepo)
	adminService := service.NewAdminService(registry, adminRepo, v)

	// Инициализация хендлеров
	authHandler := handler.NewAuthHandler(authService, empService, sessions, v, cfg.Media.URL, logger)
	dictionaryHandler := handler.NewDictionaryHandler(refService, logger)
	employeeHandler := handler.NewEmployeeHandler(empService, deptService, cfg.Media.URL, logger)
	adminHandler := handler.NewAdminHandler(adminService, deptService, empService, files, cfg.Media.URL, logger)

	// Настройка роутера
	router := handler.NewRouter(
		handler.RouterConfig{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			DefaultLocale:  i18n.Parse(cfg.Locale.Default),
			AdminLocale:    i18n.Parse(cfg.Locale.Admin),
			MediaRoot:      cfg.Media.Root,
			MediaURL:       cfg.Media.URL,
		},
		sessions,
		userRepo,
		authHandler,
		dictionaryHandler,
		employeeHandler,
		adminHandler,
		logger,
	)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("session_backend", cfg.Session.Backend),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
