package service

import (
	"context"
	"fmt"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для справочника сотрудников
type EmployeeService interface {
	List(ctx context.Context) ([]domain.User, error)
	Profile(ctx context.Context, user *domain.User) (*domain.User, error)
	SetAvatar(ctx context.Context, userID int64, path string) error
}

type employeeService struct {
	empRepo repository.EmployeeRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(empRepo repository.EmployeeRepository) EmployeeService {
	return &employeeService{empRepo: empRepo}
}

// List возвращает пользователей с профилями сотрудников
func (s *employeeService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.empRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return users, nil
}

// Profile дополняет пользователя профилем сотрудника.
// Возвращает ErrEmployeeNotFound, если профиль не заведён.
func (s *employeeService) Profile(ctx context.Context, user *domain.User) (*domain.User, error) {
	emp, err := s.empRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile := *user
	profile.Employee = emp
	return &profile, nil
}

func (s *employeeService) SetAvatar(ctx context.Context, userID int64, path string) error {
	return s.empRepo.UpdateAvatar(ctx, userID, path)
}
