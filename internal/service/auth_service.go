package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/logistics-backoffice/internal/domain"
	"github.com/logistics-backoffice/internal/repository"
)

// AuthService проверяет учётные данные
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User, password string, permissions []string) error
}

type authService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService создаёт новый экземпляр сервиса
func NewAuthService(userRepo repository.UserRepository, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// dummyHash хеш для сравнения, когда пользователь не найден
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("unusable password"), bcrypt.DefaultCost)
	return hash
})

// Authenticate возвращает ErrInvalidCredentials для неизвестного логина,
// неверного пароля и отключённой учётной записи без различия
func (s *authService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(password) || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("failed to update last login", slog.Int64("user_id", user.ID), slog.Any("error", err))
	} else {
		user.LastLogin = &now
	}
	return user, nil
}

// CreateUser хеширует пароль и сохраняет пользователя с правами
func (s *authService) CreateUser(ctx context.Context, user *domain.User, password string, permissions []string) error {
	if password == "" {
		return domain.ErrPasswordRequired
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, user, permissions); err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.Username, err)
	}
	return nil
}
