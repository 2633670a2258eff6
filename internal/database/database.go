package database

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/logistics-backoffice/internal/config"
	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/session"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// GormConfig общая конфигурация GORM для всех подключений
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}
}

// Connect подключается к PostgreSQL, повторяя попытки пока БД поднимается
func Connect(cfg config.DatabaseConfig, attempts int) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for range attempts {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
		if err == nil {
			sqlDB, _ := db.DB()
			if err = sqlDB.Ping(); err == nil {
				return db, nil
			}
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
}

// Migrate применяет встроенные SQL-миграции
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Models перечисляет все модели схемы в порядке зависимостей
func Models() []any {
	return []any{
		&domain.Permission{},
		&domain.Group{},
		&domain.User{},
		&domain.Department{},
		&domain.Position{},
		&domain.Employee{},
		&domain.Country{},
		&domain.City{},
		&domain.Terminal{},
		&domain.Currency{},
		&domain.Container{},
		&domain.DangerClass{},
		&domain.Incoterms{},
		&domain.PackagingType{},
		&domain.DeliveryType{},
		&domain.Cargo{},
		&session.Record{},
	}
}
