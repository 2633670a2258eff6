package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/logistics-backoffice/internal/admin"
	"github.com/logistics-backoffice/internal/domain"
)

// AdminRepository выполняет CRUD для моделей из реестра админки
type AdminRepository interface {
	List(ctx context.Context, m *admin.ModelAdmin, q admin.ListQuery) ([]any, error)
	Get(ctx context.Context, m *admin.ModelAdmin, id int64) (any, error)
	Save(ctx context.Context, m *admin.ModelAdmin, obj any, body json.RawMessage) error
	Delete(ctx context.Context, m *admin.ModelAdmin, id int64) error
	EnsurePermissions(ctx context.Context, perms []domain.Permission) (int, error)
}

type adminRepository struct {
	db       *gorm.DB
	registry *admin.Registry
}

// NewAdminRepository создаёт новый экземпляр репозитория
func NewAdminRepository(db *gorm.DB, registry *admin.Registry) AdminRepository {
	return &adminRepository{db: db, registry: registry}
}

func (r *adminRepository) query(ctx context.Context, m *admin.ModelAdmin) *gorm.DB {
	query := r.db.WithContext(ctx)
	for _, p := range m.Preload {
		query = query.Preload(p)
	}
	return query
}

func (r *adminRepository) List(ctx context.Context, m *admin.ModelAdmin, q admin.ListQuery) ([]any, error) {
	query := r.query(ctx, m)

	if search := strings.TrimSpace(q.Search); search != "" && len(m.SearchFields) > 0 {
		pattern := "%" + strings.ToLower(search) + "%"
		exprs := make([]clause.Expression, 0, len(m.SearchFields))
		for _, field := range m.SearchFields {
			exprs = append(exprs, clause.Expr{
				SQL:  "LOWER(?) LIKE ?",
				Vars: []any{clause.Column{Table: clause.CurrentTable, Name: field}, pattern},
			})
		}
		query = query.Where(clause.Or(exprs...))
	}

	for name, raw := range q.Filters {
		filter, ok := m.Filter(name)
		if !ok || raw == "" {
			continue
		}
		value, err := filter.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%s=%q: %w", name, raw, domain.ErrInvalidFilter)
		}
		query = query.Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: filter.Column}, Value: value})
	}

	slice := m.NewSlice()
	if err := query.Order(m.Ordering).Order("id").Find(slice).Error; err != nil {
		return nil, err
	}
	return admin.Objects(slice), nil
}

func (r *adminRepository) Get(ctx context.Context, m *admin.ModelAdmin, id int64) (any, error) {
	obj := m.New()
	if err := r.query(ctx, m).First(obj, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrObjectNotFound
		}
		return nil, err
	}
	return obj, nil
}

// Save сохраняет объект без связей. Связанные записи пишет AfterSave модели в той же транзакции.
func (r *adminRepository) Save(ctx context.Context, m *admin.ModelAdmin, obj any, body json.RawMessage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(obj).Error; err != nil {
			return err
		}
		if m.AfterSave != nil {
			return m.AfterSave(tx, obj, body)
		}
		return nil
	})
	return translateError(err)
}

func (r *adminRepository) Delete(ctx context.Context, m *admin.ModelAdmin, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.deleteIDs(tx, m, []int64{id})
	})
	return translateError(err)
}

// deleteIDs удаляет записи модели, обрабатывая зависимые таблицы по правилам Relations
func (r *adminRepository) deleteIDs(tx *gorm.DB, m *admin.ModelAdmin, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	for _, rel := range m.Relations {
		if rel.Action != admin.Protect {
			continue
		}
		var count int64
		if err := tx.Table(rel.Table).Where("? IN ?", clause.Column{Name: rel.Column}, ids).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%d %s: %w", count, rel.Table, domain.ErrProtected)
		}
	}

	for _, rel := range m.Relations {
		switch rel.Action {
		case admin.Cascade:
			if rel.Slug != "" {
				child, err := r.registry.Get(rel.Slug)
				if err != nil {
					return err
				}
				var childIDs []int64
				if err := tx.Table(rel.Table).Where("? IN ?", clause.Column{Name: rel.Column}, ids).Pluck("id", &childIDs).Error; err != nil {
					return err
				}
				if err := r.deleteIDs(tx, child, childIDs); err != nil {
					return err
				}
				continue
			}
			if err := tx.Exec("DELETE FROM ? WHERE ? IN ?",
				clause.Table{Name: rel.Table}, clause.Column{Name: rel.Column}, ids).Error; err != nil {
				return err
			}
		case admin.SetNull:
			if err := tx.Exec("UPDATE ? SET ? = NULL WHERE ? IN ?",
				clause.Table{Name: rel.Table}, clause.Column{Name: rel.Column}, clause.Column{Name: rel.Column}, ids).Error; err != nil {
				return err
			}
		}
	}

	return tx.Delete(m.New(), ids).Error
}

// EnsurePermissions создаёт отсутствующие права и возвращает число созданных
func (r *adminRepository) EnsurePermissions(ctx context.Context, perms []domain.Permission) (int, error) {
	var missing []domain.Permission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&domain.Permission{}).Pluck("codename", &existing).Error; err != nil {
			return err
		}
		known := make(map[string]bool, len(existing))
		for _, codename := range existing {
			known[codename] = true
		}

		for _, p := range perms {
			if !known[p.Codename] {
				known[p.Codename] = true
				missing = append(missing, domain.Permission{Codename: p.Codename, Name: p.Name})
			}
		}
		if len(missing) == 0 {
			return nil
		}
		return tx.Create(&missing).Error
	})
	if err != nil {
		return 0, translateError(err)
	}
	return len(missing), nil
}
