package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// New создаёт валидатор с дополнительными правилами и именами полей из json-тегов
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := RegisterCustomValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterCustomValidations регистрирует собственные правила в переданном валидаторе
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("digits", isDigits)
}

// isDigits проверяет, что строка состоит только из цифр
func isDigits(fl validator.FieldLevel) bool {
	return digitsRegex.MatchString(fl.Field().String())
}
