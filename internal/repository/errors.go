package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/logistics-backoffice/internal/domain"
)

// translateError приводит ошибки ограничений БД к доменным
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrInvalidReference
	default:
		return err
	}
}
