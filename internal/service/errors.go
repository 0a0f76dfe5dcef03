package service

import (
	"errors"
	"fmt"
	"strings"

	"taskBoard/internal/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidID    = "INVALID_ID"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{Key: key, Payload: payload}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

// AsBusinessError достаёт BusinessError из цепочки ошибок.
func AsBusinessError(err error) (*BusinessError, bool) {
	var busErr *BusinessError
	if errors.As(err, &busErr) {
		return busErr, true
	}
	return nil, false
}

// NewNotFound не различает «нет записи» и «запись чужая».
func NewNotFound(resource, id string) *BusinessError {
	return NewBusinessError(CodeNotFound, fmt.Sprintf("%s not found", resource),
		ToDetail("resource", strings.ToLower(resource)),
		ToDetail("id", id),
	)
}

func NewValidationError(field, reason string) *BusinessError {
	return NewBusinessError(CodeValidation, fmt.Sprintf("Invalid value for '%s': %s", field, reason),
		ToDetail("field", field),
		ToDetail("reason", reason),
	)
}

func newFieldsError(errs []validation.FieldError) *BusinessError {
	if len(errs) == 1 {
		return NewValidationError(errs[0].Field, errs[0].Reason())
	}

	fields := make(map[string]string, len(errs))
	names := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields[fe.Field] = fe.Reason()
		names = append(names, fe.Field)
	}
	return NewBusinessError(CodeValidation, "Missing or invalid fields: "+strings.Join(names, ", "),
		ToDetail("fields", fields),
	)
}

func NewInvalidID(id string) *BusinessError {
	return NewBusinessError(CodeInvalidID, "Invalid ID", ToDetail("id", id))
}

func NewConflict(message string, details ...Detail) *BusinessError {
	return NewBusinessError(CodeConflict, message, details...)
}

func NewForbidden(message string) *BusinessError {
	return NewBusinessError(CodeForbidden, message)
}

func NewUnauthorized(message string) *BusinessError {
	return NewBusinessError(CodeUnauthorized, message)
}

// ParseID проверяет формат идентификатора до обращения к хранилищу.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, NewInvalidID(raw)
	}
	return id, nil
}
