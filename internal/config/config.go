package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Media    MediaConfig
	Log      LogConfig
	Locale   LocaleConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// SessionConfig - настройки сессий
type SessionConfig struct {
	Backend    string // db или redis
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// RedisConfig - подключение к Redis для хранения сессий
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// MediaConfig - хранилище загруженных файлов
type MediaConfig struct {
	Root string
	URL  string
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level string
	File  string
}

// LocaleConfig - язык по умолчанию и язык админки
type LocaleConfig struct {
	Default string
	Admin   string
}

// Load загружает конфигурацию из .env и переменных окружения
func Load() *Config {
	// Отсутствие .env не ошибка, значения берутся из окружения
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "backoffice"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			Backend:    getEnv("SESSION_BACKEND", "db"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "sessionid"),
			TTL:        getEnvDuration("SESSION_TTL", 14*24*time.Hour),
			Secure:     getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Media: MediaConfig{
			Root: getEnv("MEDIA_ROOT", "./media"),
			URL:  getEnv("MEDIA_URL", "/media/"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Locale: LocaleConfig{
			Default: getEnv("LANGUAGE_CODE", "en"),
			Admin:   getEnv("ADMIN_LANGUAGE_CODE", "uk"),
		},
	}
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	var result []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
