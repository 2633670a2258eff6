package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/logistics-backoffice/internal/admin"
	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/repository"
)

// AdminService определяет операции административного интерфейса
type AdminService interface {
	Models() []*admin.ModelAdmin
	Model(slug string) (*admin.ModelAdmin, error)
	List(ctx context.Context, slug string, q admin.ListQuery) (*admin.ModelAdmin, []any, error)
	Get(ctx context.Context, slug string, id int64) (*admin.ModelAdmin, any, error)
	Create(ctx context.Context, actor *domain.User, slug string, body json.RawMessage) (*admin.ModelAdmin, any, error)
	Update(ctx context.Context, actor *domain.User, slug string, id int64, body json.RawMessage) (*admin.ModelAdmin, any, error)
	Delete(ctx context.Context, actor *domain.User, slug string, id int64) error
	Authorize(actor *domain.User, slug, action string) error
	SyncPermissions(ctx context.Context) (int, error)
}

type adminService struct {
	registry  *admin.Registry
	repo      repository.AdminRepository
	validator *validator.Validate
}

// NewAdminService создаёт новый экземпляр сервиса
func NewAdminService(registry *admin.Registry, repo repository.AdminRepository, v *validator.Validate) AdminService {
	return &adminService{
		registry:  registry,
		repo:      repo,
		validator: v,
	}
}

func (s *adminService) Models() []*admin.ModelAdmin {
	return s.registry.All()
}

func (s *adminService) Model(slug string) (*admin.ModelAdmin, error) {
	return s.registry.Get(slug)
}

// Authorize проверяет право вида admin.<action>_<model>
func (s *adminService) Authorize(actor *domain.User, slug, action string) error {
	m, err := s.registry.Get(slug)
	if err != nil {
		return err
	}
	if actor == nil || !actor.HasPerm(m.Permission(action)) {
		return domain.ErrPermissionDenied
	}
	return nil
}

func (s *adminService) List(ctx context.Context, slug string, q admin.ListQuery) (*admin.ModelAdmin, []any, error) {
	m, err := s.registry.Get(slug)
	if err != nil {
		return nil, nil, err
	}
	objects, err := s.repo.List(ctx, m, q)
	if err != nil {
		return nil, nil, err
	}
	return m, objects, nil
}

func (s *adminService) Get(ctx context.Context, slug string, id int64) (*admin.ModelAdmin, any, error) {
	m, err := s.registry.Get(slug)
	if err != nil {
		return nil, nil, err
	}
	obj, err := s.repo.Get(ctx, m, id)
	if err != nil {
		return nil, nil, err
	}
	return m, obj, nil
}

func (s *adminService) Create(ctx context.Context, actor *domain.User, slug string, body json.RawMessage) (*admin.ModelAdmin, any, error) {
	if err := s.Authorize(actor, slug, "add"); err != nil {
		return nil, nil, err
	}
	m, _ := s.registry.Get(slug)

	obj := m.New()
	if err := json.Unmarshal(body, obj); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidBody, err)
	}
	admin.SetID(obj, 0)

	return s.save(ctx, m, obj, body, true)
}

func (s *adminService) Update(ctx context.Context, actor *domain.User, slug string, id int64, body json.RawMessage) (*admin.ModelAdmin, any, error) {
	if err := s.Authorize(actor, slug, "change"); err != nil {
		return nil, nil, err
	}
	m, _ := s.registry.Get(slug)

	obj, err := s.repo.Get(ctx, m, id)
	if err != nil {
		return nil, nil, err
	}
	if err := json.Unmarshal(body, obj); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidBody, err)
	}
	admin.SetID(obj, id)

	return s.save(ctx, m, obj, body, false)
}

func (s *adminService) save(ctx context.Context, m *admin.ModelAdmin, obj any, body json.RawMessage, creating bool) (*admin.ModelAdmin, any, error) {
	if m.BeforeSave != nil {
		if err := m.BeforeSave(ctx, obj, body, creating); err != nil {
			return nil, nil, err
		}
	}
	if err := s.validate(obj); err != nil {
		return nil, nil, err
	}
	if err := s.repo.Save(ctx, m, obj, body); err != nil {
		return nil, nil, err
	}

	saved, err := s.repo.Get(ctx, m, admin.GetID(obj))
	if err != nil {
		return nil, nil, err
	}
	return m, saved, nil
}

// validate проверяет теги validate и собственные правила модели
func (s *adminService) validate(obj any) error {
	if err := s.validator.Struct(obj); err != nil {
		return err
	}
	if v, ok := obj.(interface{ Validate() error }); ok {
		return v.Validate()
	}
	return nil
}

func (s *adminService) Delete(ctx context.Context, actor *domain.User, slug string, id int64) error {
	if err := s.Authorize(actor, slug, "delete"); err != nil {
		return err
	}
	m, _ := s.registry.Get(slug)

	if _, err := s.repo.Get(ctx, m, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, m, id)
}

// SyncPermissions заводит права admin.<action>_<model> для всех моделей реестра
func (s *adminService) SyncPermissions(ctx context.Context) (int, error) {
	created, err := s.repo.EnsurePermissions(ctx, s.registry.Permissions())
	if err != nil {
		return 0, fmt.Errorf("failed to sync permissions: %w", err)
	}
	return created, nil
}
