// Package fixtures загружает данные из YAML-файлов в обход валидации форм.
//
// Формат файла: список записей вида
//
//	- model: countries
//	  pk: 1
//	  fields:
//	    name_en: Ukraine
//	    alpha2: UA
//
// Имя модели совпадает со slug административного реестра. Записи
// применяются в порядке файла в одной транзакции.
package fixtures

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/logistics-backoffice/internal/admin"
	"github.com/logistics-backoffice/internal/domain"
)

// Entry одна запись файла
type Entry struct {
	Model  string         `yaml:"model"`
	PK     int64          `yaml:"pk"`
	Fields map[string]any `yaml:"fields"`
}

// Parse читает записи из YAML
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return entries, nil
}

// Loader сохраняет записи через модели административного реестра
type Loader struct {
	db       *gorm.DB
	registry *admin.Registry
	logger   *slog.Logger
}

func NewLoader(db *gorm.DB, registry *admin.Registry, logger *slog.Logger) *Loader {
	return &Loader{db: db, registry: registry, logger: logger}
}

// LoadFile загружает файл и возвращает число сохранённых записей
func (l *Loader) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return l.Load(ctx, entries)
}

// Load сохраняет записи. Запись с pk обновляет существующую строку или создаёт её с этим id.
func (l *Loader) Load(ctx context.Context, entries []Entry) (int, error) {
	tables := make(map[string]bool)

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, entry := range entries {
			table, err := l.save(ctx, tx, entry)
			if err != nil {
				return fmt.Errorf("entry %d (%s): %w", i+1, entry.Model, err)
			}
			tables[table] = true
		}
		if tx.Dialector.Name() == "postgres" {
			return resetSequences(tx, tables)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	l.logger.Info("fixtures loaded", slog.Int("objects", len(entries)), slog.Int("tables", len(tables)))
	return len(entries), nil
}

func (l *Loader) save(ctx context.Context, tx *gorm.DB, entry Entry) (string, error) {
	m, err := l.registry.Get(entry.Model)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(normalize(entry.Fields))
	if err != nil {
		return "", err
	}
	obj := m.New()
	if err := json.Unmarshal(body, obj); err != nil {
		return "", err
	}
	admin.SetID(obj, entry.PK)

	creating := true
	if entry.PK != 0 {
		var count int64
		if err := tx.Model(m.New()).Where("id = ?", entry.PK).Count(&count).Error; err != nil {
			return "", err
		}
		creating = count == 0
	}

	if m.BeforeSave != nil {
		if err := m.BeforeSave(ctx, obj, body, creating); err != nil {
			return "", err
		}
	}
	if creating {
		err = tx.Omit(clause.Associations).Create(obj).Error
	} else {
		err = tx.Omit(clause.Associations).Save(obj).Error
	}
	if err != nil {
		return "", err
	}
	if m.AfterSave != nil {
		if err := m.AfterSave(tx, obj, body); err != nil {
			return "", err
		}
	}

	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(obj); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}

// resetSequences сдвигает счётчики id после вставки записей с явным pk
func resetSequences(tx *gorm.DB, tables map[string]bool) error {
	for table := range tables {
		err := tx.Exec(
			"SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE((SELECT MAX(id) FROM ?), 1))",
			table, clause.Table{Name: table},
		).Error
		if err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}

// normalize приводит даты YAML без времени к виду YYYY-MM-DD
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case time.Time:
		if val.Equal(val.Truncate(24 * time.Hour)) {
			return val.Format(domain.DateLayout)
		}
		return val.Format(time.RFC3339)
	default:
		return v
	}
}
