// Package testutil собирает тестовое окружение на SQLite в памяти.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/logistics-backoffice/internal/database"
	"github.com/logistics-backoffice/internal/domain"
)

// NewDB открывает отдельную базу SQLite в памяти и создаёт схему
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// NopLogger логгер, который ничего не пишет
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// UserOption настраивает создаваемого пользователя
type UserOption func(*domain.User)

// Staff делает пользователя сотрудником админки
func Staff() UserOption {
	return func(u *domain.User) { u.IsStaff = true }
}

// Superuser выдаёт все права
func Superuser() UserOption {
	return func(u *domain.User) {
		u.IsStaff = true
		u.IsSuperuser = true
	}
}

// Inactive отключает учётную запись
func Inactive() UserOption {
	return func(u *domain.User) { u.IsActive = false }
}

// WithPermissions выдаёт пользователю права напрямую
func WithPermissions(codenames ...string) UserOption {
	return func(u *domain.User) {
		for _, c := range codenames {
			u.Permissions = append(u.Permissions, domain.Permission{Codename: c, Name: c})
		}
	}
}

// CreateUser создаёт активного пользователя с паролем
func CreateUser(t testing.TB, db *gorm.DB, username, password string, opts ...UserOption) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:  username,
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		LastName:  "Tester",
		Email:     username + "@example.com",
		IsActive:  true,
	}
	for _, opt := range opts {
		opt(user)
	}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	for i, p := range user.Permissions {
		if err := db.Where(domain.Permission{Codename: p.Codename}).FirstOrCreate(&user.Permissions[i]).Error; err != nil {
			t.Fatalf("failed to create permission %s: %v", p.Codename, err)
		}
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// Org отдел с должностью для профилей сотрудников
type Org struct {
	Department domain.Department
	Position   domain.Position
}

// CreateOrg создаёт отдел и должность в нём
func CreateOrg(t testing.TB, db *gorm.DB, department, position string) *Org {
	t.Helper()

	org := &Org{Department: domain.Department{Name: department}}
	if err := db.Create(&org.Department).Error; err != nil {
		t.Fatalf("failed to create department: %v", err)
	}
	org.Position = domain.Position{Name: position, DepartmentID: org.Department.ID}
	if err := db.Create(&org.Position).Error; err != nil {
		t.Fatalf("failed to create position: %v", err)
	}
	return org
}

// CreateEmployee привязывает профиль сотрудника к пользователю
func CreateEmployee(t testing.TB, db *gorm.DB, user *domain.User, org *Org, mutate ...func(*domain.Employee)) *domain.Employee {
	t.Helper()

	emp := &domain.Employee{
		UserID:       user.ID,
		DepartmentID: org.Department.ID,
		PositionID:   org.Position.ID,
	}
	for _, m := range mutate {
		m(emp)
	}
	if err := db.Create(emp).Error; err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}
	return emp
}

// MustCreate сохраняет произвольные записи
func MustCreate(t testing.TB, db *gorm.DB, values ...any) {
	t.Helper()
	for _, v := range values {
		if err := db.WithContext(context.Background()).Create(v).Error; err != nil {
			t.Fatalf("failed to create %T: %v", v, err)
		}
	}
}
