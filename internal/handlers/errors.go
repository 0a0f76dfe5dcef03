package handlers

import (
	"errors"
	"net/http"

	"taskBoard/internal/access"
	"taskBoard/internal/logger"
	"taskBoard/internal/service"

	"go.uber.org/zap"
)

// handleError пишет ответ для любой ошибки сервиса. Неожиданные ошибки
// логируются целиком, клиент получает только общий текст.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	if handleBusinessError(w, err) {
		return
	}

	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		responseWithError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, access.ErrForbidden):
		responseWithError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, errUnsupportedMediaType):
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
	case errors.Is(err, access.ErrViewUserMissing):
		responseWithJSON(w, http.StatusBadRequest,
			toPayload("error", "viewUser is required when viewMode=user"),
			toPayload("code", service.CodeValidation),
		)
	default:
		logger.Error("HTTP: Внутренняя ошибка", err,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))
		responseWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func handleBusinessError(w http.ResponseWriter, err error) bool {
	businessErr, ok := service.AsBusinessError(err)
	if !ok {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	payload := []Payload{
		toPayload("error", businessErr.Message),
		toPayload("code", businessErr.Code),
	}
	if len(businessErr.Details) > 0 {
		payload = append(payload, toPayload("details", businessErr.Details))
	}
	responseWithJSON(w, statusCode, payload...)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	case service.CodeForbidden:
		return http.StatusForbidden
	case service.CodeValidation, service.CodeInvalidID:
		return http.StatusBadRequest
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
