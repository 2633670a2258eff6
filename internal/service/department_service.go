package service

import (
	"context"
	"fmt"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/repository"
)

// DepartmentService определяет интерфейс бизнес-логики для отделов
type DepartmentService interface {
	List(ctx context.Context) ([]domain.Department, error)
	Positions(ctx context.Context, departmentID int64) ([]domain.Position, error)
}

type departmentService struct {
	deptRepo repository.DepartmentRepository
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(deptRepo repository.DepartmentRepository) DepartmentService {
	return &departmentService{deptRepo: deptRepo}
}

// List возвращает отделы с должностями
func (s *departmentService) List(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.deptRepo.ListWithPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}

// Positions возвращает должности отдела для зависимого выбора в форме сотрудника
func (s *departmentService) Positions(ctx context.Context, departmentID int64) ([]domain.Position, error) {
	positions, err := s.deptRepo.ListPositions(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return positions, nil
}
