package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/logistics-backoffice/internal/domain"
)

// UserRepository определяет интерфейс для работы с учётными записями
type UserRepository interface {
	Create(ctx context.Context, user *domain.User, permissions []string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository создаёт новый экземпляр репозитория
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create сохраняет пользователя и выдаёт ему права, создавая недостающие
func (r *userRepository) Create(ctx context.Context, user *domain.User, permissions []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, codename := range permissions {
			perm := domain.Permission{Codename: codename}
			if err := tx.Where(&perm).Attrs(domain.Permission{Name: codename}).FirstOrCreate(&perm).Error; err != nil {
				return err
			}
			user.Permissions = append(user.Permissions, perm)
		}
		return translateError(tx.Omit("Permissions.*").Create(user).Error)
	})
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if id == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.first(ctx, &domain.User{ID: id})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.first(ctx, &domain.User{Username: username})
}

func (r *userRepository) first(ctx context.Context, cond *domain.User) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Preload("Groups.Permissions").
		Where(cond).
		Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{ID: id}).
		UpdateColumn("last_login", at).Error
}
