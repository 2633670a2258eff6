package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// PermViewEmployeesList даёт доступ к списку сотрудников
const PermViewEmployeesList = "dictionary.view_employees_list"

// Department представляет отдел
type Department struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`

	Positions []Position `json:"-" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Department) TableName() string {
	return "departments"
}

func (d Department) String() string {
	return d.Name
}

// Position представляет должность внутри отдела
type Position struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	DepartmentID int64  `json:"department_id" gorm:"not null;index" validate:"required,min=1"`

	Department *Department `json:"-" gorm:"foreignKey:DepartmentID"`
}

// TableName задаёт имя таблицы для GORM
func (Position) TableName() string {
	return "positions"
}

func (p Position) String() string {
	return p.Name
}

// Permission именованное право вида "app.codename"
type Permission struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Codename string `json:"codename" gorm:"type:varchar(100);not null;uniqueIndex" validate:"required,max=100"`
	Name     string `json:"name" gorm:"type:varchar(255)" validate:"max=255"`
}

// TableName задаёт имя таблицы для GORM
func (Permission) TableName() string {
	return "permissions"
}

// Group объединяет права для нескольких пользователей
type Group struct {
	ID          int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string       `json:"name" gorm:"type:varchar(150);not null;uniqueIndex" validate:"required,max=150"`
	Permissions []Permission `json:"-" gorm:"many2many:group_permissions"`
}

// TableName задаёт имя таблицы для GORM
func (Group) TableName() string {
	return "groups"
}

// User учётная запись. Профиль сотрудника хранится отдельно и связан по user_id.
type User struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username    string     `json:"username" gorm:"type:varchar(150);not null;uniqueIndex" validate:"required,max=150"`
	Password    string     `json:"-" gorm:"type:varchar(128);not null"`
	FirstName   string     `json:"first_name" gorm:"type:varchar(150)" validate:"max=150"`
	LastName    string     `json:"last_name" gorm:"type:varchar(150)" validate:"max=150"`
	Email       string     `json:"email" gorm:"type:varchar(254)" validate:"omitempty,email,max=254"`
	IsActive    bool       `json:"is_active" gorm:"not null"`
	IsStaff     bool       `json:"is_staff" gorm:"not null"`
	IsSuperuser bool       `json:"is_superuser" gorm:"not null"`
	DateJoined  time.Time  `json:"date_joined" gorm:"autoCreateTime"`
	LastLogin   *time.Time `json:"last_login"`

	Groups      []Group      `json:"-" gorm:"many2many:user_groups"`
	Permissions []Permission `json:"-" gorm:"many2many:user_permissions"`
	Employee    *Employee    `json:"employee,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.Username
}

// FullName возвращает имя и фамилию через пробел
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SetPassword сохраняет bcrypt-хеш пароля
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword сравнивает пароль с сохранённым хешем
func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(raw)) == nil
}

// GroupNames возвращает отсортированные имена групп
func (u *User) GroupNames() []string {
	names := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		names = append(names, g.Name)
	}
	sort.Strings(names)
	return names
}

// PermissionNames объединяет личные права и права групп.
// Ожидает предзагруженные Permissions и Groups.Permissions.
func (u *User) PermissionNames() []string {
	set := make(map[string]struct{})
	for _, p := range u.Permissions {
		set[p.Codename] = struct{}{}
	}
	for _, g := range u.Groups {
		for _, p := range g.Permissions {
			set[p.Codename] = struct{}{}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasPerm проверяет право. Неактивный пользователь прав не имеет, суперпользователь имеет все.
func (u *User) HasPerm(codename string) bool {
	if !u.IsActive {
		return false
	}
	if u.IsSuperuser {
		return true
	}
	for _, name := range u.PermissionNames() {
		if name == codename {
			return true
		}
	}
	return false
}

// Employee профиль сотрудника, расширение учётной записи один к одному
type Employee struct {
	ID                  int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID              int64   `json:"user_id" gorm:"not null;uniqueIndex"`
	AdditionalEmail     *string `json:"additional_email" gorm:"type:varchar(254)" validate:"omitempty,email"`
	Phone               *string `json:"phone" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	AdditionalPhone     *string `json:"additional_phone" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	BirthDate           *Date   `json:"birth_date"`
	DepartmentID        int64   `json:"department_id" gorm:"not null;index" validate:"required,min=1"`
	PositionID          int64   `json:"position_id" gorm:"not null;index" validate:"required,min=1"`
	HireDate            *Date   `json:"hire_date"`
	TerminationDate     *Date   `json:"termination_date"`
	Avatar              *string `json:"avatar" gorm:"type:varchar(255)"`
	RegistrationAddress *string `json:"registration_address" gorm:"type:text"`
	LivingAddress       *string `json:"living_address" gorm:"type:text"`

	Department *Department `json:"-" gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT"`
	Position   *Position   `json:"-" gorm:"foreignKey:PositionID;constraint:OnDelete:RESTRICT"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// PositionInfo возвращает "Должность (Отдел)" при загруженных связях
func (e *Employee) PositionInfo() string {
	var position, department string
	if e.Position != nil {
		position = e.Position.Name
	}
	if e.Department != nil {
		department = e.Department.Name
	}
	return fmt.Sprintf("%s (%s)", position, department)
}
