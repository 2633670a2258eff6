package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/logistics-backoffice/internal/admin"
	"github.com/logistics-backoffice/internal/config"
	"github.com/logistics-backoffice/internal/database"
	applog "github.com/logistics-backoffice/internal/logger"
	"github.com/logistics-backoffice/internal/repository"
	"github.com/logistics-backoffice/internal/service"
	"github.com/logistics-backoffice/internal/session"
	"github.com/logistics-backoffice/internal/validation"
)

const connectAttempts = 30

var (
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd без подкоманды запускает HTTP сервер
var rootCmd = &cobra.Command{
	Use:          "api",
	Short:        "Logistics back office: HR directory, reference dictionaries and admin",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger = applog.New(cfg.Log)
		slog.SetDefault(logger)
	},
	RunE: runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and create admin permissions",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, createUserCmd, loadDataCmd, clearSessionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB подключается к БД и применяет миграции
func openDB() (*gorm.DB, func(), error) {
	db, err := database.Connect(cfg.Database, connectAttempts)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	closeDB := func() { sqlDB.Close() }

	if err := database.Migrate(sqlDB); err != nil {
		closeDB()
		return nil, nil, err
	}
	return db, closeDB, nil
}

// syncPermissions заводит права на действия в админке для всех моделей
func syncPermissions(ctx context.Context, db *gorm.DB, registry *admin.Registry) error {
	adminService := service.NewAdminService(registry, repository.NewAdminRepository(db, registry), validation.New())
	created, err := adminService.SyncPermissions(ctx)
	if err != nil {
		return err
	}
	if created > 0 {
		logger.Info("admin permissions created", slog.Int("count", created))
	}
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, closeDB, err := openDB()
	if err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		return err
	}
	defer closeDB()

	if err := syncPermissions(cmd.Context(), db, admin.Default()); err != nil {
		logger.Error("failed to sync permissions", slog.Any("error", err))
		return err
	}
	logger.Info("migrations applied")
	return nil
}

// newSessionStore выбирает хранилище сессий по SESSION_BACKEND
func newSessionStore(ctx context.Context, db *gorm.DB) (session.Store, error) {
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := client.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Address, err)
		}
		return session.NewRedisStore(client), nil
	case "db", "":
		return session.NewGormStore(db), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
