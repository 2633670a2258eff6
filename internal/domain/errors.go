package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmployeeNotFound      = errors.New("employee profile not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrDangerClassRequired   = errors.New("danger class is required for dangerous cargo")
	ErrDangerClassNotAllowed = errors.New("danger class must be empty for non-dangerous cargo")
	ErrModelNotFound         = errors.New("model is not registered")
	ErrObjectNotFound        = errors.New("object not found")
	ErrDuplicate             = errors.New("object with these unique fields already exists")
	ErrProtected             = errors.New("object is referenced by protected foreign keys")
	ErrInvalidReference      = errors.New("referenced object does not exist")
	ErrPasswordRequired      = errors.New("password is required")
	ErrInvalidFilter         = errors.New("invalid filter value")
	ErrInvalidBody           = errors.New("invalid request body")
)
