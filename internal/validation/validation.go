// Package validation wraps go-playground/validator with the tags used by
// request inputs: dates as YYYY-MM-DD, clock times as HH:MM, planner weekdays.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"taskBoard/internal/models/note"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (f FieldError) Reason() string {
	switch f.Rule {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", f.Param)
	case "datetime":
		return fmt.Sprintf("must match layout %s", f.Param)
	case "weekday":
		return "must be a weekday name (Monday..Sunday)"
	case "gte":
		return fmt.Sprintf("must be >= %s", f.Param)
	case "lte":
		return fmt.Sprintf("must be <= %s", f.Param)
	default:
		return fmt.Sprintf("failed rule %s", f.Rule)
	}
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// ошибка регистрации возможна только при пустом имени тега
	_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return note.IsWeekday(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Check возвращает нарушения в порядке полей структуры; nil, если их нет.
func (v *Validator) Check(s any) ([]FieldError, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("валидация: %w", err)
	}

	res := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		res = append(res, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return res, nil
}
