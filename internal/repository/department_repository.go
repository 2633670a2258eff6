package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/logistics-backoffice/internal/domain"
)

// DepartmentRepository определяет интерфейс для работы с отделами и должностями
type DepartmentRepository interface {
	ListWithPositions(ctx context.Context) ([]domain.Department, error)
	ListPositions(ctx context.Context, departmentID int64) ([]domain.Position, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) ListWithPositions(ctx context.Context) ([]domain.Department, error) {
	var departments []domain.Department
	err := r.db.WithContext(ctx).
		Preload("Positions", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC, id ASC")
		}).
		Order("name ASC, id ASC").
		Find(&departments).Error
	return departments, err
}

func (r *departmentRepository) ListPositions(ctx context.Context, departmentID int64) ([]domain.Position, error) {
	var positions []domain.Position
	err := r.db.WithContext(ctx).
		Where(&domain.Position{DepartmentID: departmentID}).
		Order("name ASC, id ASC").
		Find(&positions).Error
	return positions, err
}
