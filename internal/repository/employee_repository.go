package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/logistics-backoffice/internal/domain"
)

// EmployeeRepository определяет интерфейс для работы с профилями сотрудников
type EmployeeRepository interface {
	// ListUsers возвращает пользователей, у которых есть профиль сотрудника
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Employee, error)
	UpdateAvatar(ctx context.Context, userID int64, path string) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.user_id = users.id").
		Preload("Employee.Department").
		Preload("Employee.Position").
		Order("users.id ASC").
		Find(&users).Error
	return users, err
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Position").
		Where(&domain.Employee{UserID: userID}).
		Take(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) UpdateAvatar(ctx context.Context, userID int64, path string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where(&domain.Employee{UserID: userID}).
		Update("avatar", path)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
