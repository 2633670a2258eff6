package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/logistics-backoffice/internal/domain"
)

// ReferenceRepository читает справочники целиком
type ReferenceRepository interface {
	Countries(ctx context.Context) ([]domain.Country, error)
	Cities(ctx context.Context) ([]domain.City, error)
	Terminals(ctx context.Context) ([]domain.Terminal, error)
	Currencies(ctx context.Context) ([]domain.Currency, error)
	Containers(ctx context.Context) ([]domain.Container, error)
	DangerClasses(ctx context.Context) ([]domain.DangerClass, error)
	Incoterms(ctx context.Context) ([]domain.Incoterms, error)
	PackagingTypes(ctx context.Context) ([]domain.PackagingType, error)
	DeliveryTypes(ctx context.Context) ([]domain.DeliveryType, error)
	Cargos(ctx context.Context) ([]domain.Cargo, error)
}

type referenceRepository struct {
	db *gorm.DB
}

// NewReferenceRepository создаёт новый экземпляр репозитория
func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func listAll[T any](ctx context.Context, db *gorm.DB, preload ...string) ([]T, error) {
	items := make([]T, 0)
	query := db.WithContext(ctx).Order("id ASC")
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *referenceRepository) Countries(ctx context.Context) ([]domain.Country, error) {
	return listAll[domain.Country](ctx, r.db)
}

// Cities подгружает страну для денормализованного country__name_en
func (r *referenceRepository) Cities(ctx context.Context) ([]domain.City, error) {
	return listAll[domain.City](ctx, r.db, "Country")
}

func (r *referenceRepository) Terminals(ctx context.Context) ([]domain.Terminal, error) {
	return listAll[domain.Terminal](ctx, r.db)
}

func (r *referenceRepository) Currencies(ctx context.Context) ([]domain.Currency, error) {
	return listAll[domain.Currency](ctx, r.db)
}

func (r *referenceRepository) Containers(ctx context.Context) ([]domain.Container, error) {
	return listAll[domain.Container](ctx, r.db)
}

func (r *referenceRepository) DangerClasses(ctx context.Context) ([]domain.DangerClass, error) {
	return listAll[domain.DangerClass](ctx, r.db)
}

func (r *referenceRepository) Incoterms(ctx context.Context) ([]domain.Incoterms, error) {
	return listAll[domain.Incoterms](ctx, r.db)
}

func (r *referenceRepository) PackagingTypes(ctx context.Context) ([]domain.PackagingType, error) {
	return listAll[domain.PackagingType](ctx, r.db)
}

func (r *referenceRepository) DeliveryTypes(ctx context.Context) ([]domain.DeliveryType, error) {
	return listAll[domain.DeliveryType](ctx, r.db)
}

func (r *referenceRepository) Cargos(ctx context.Context) ([]domain.Cargo, error) {
	return listAll[domain.Cargo](ctx, r.db)
}
