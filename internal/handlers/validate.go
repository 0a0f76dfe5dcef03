package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"taskBoard/internal/access"
	"taskBoard/internal/models/task"
	"taskBoard/internal/service"
)

const maxBodyBytes = 1 << 20

var errUnsupportedMediaType = errors.New("content type must be application/json")

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// decodeBody читает JSON тело. Пустое или битое тело даёт ошибку валидации,
// неверный Content-Type даёт 415.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if !checkContentType(r, "application/json") {
		return errUnsupportedMediaType
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return service.NewBusinessError(service.CodeValidation, "Invalid JSON body",
			service.ToDetail("reason", err.Error()))
	}
	return nil
}

// taskQuery разбирает параметры выборки задач и режим просмотра.
func taskQuery(r *http.Request, id access.Identity) (access.Scope, task.Filters, error) {
	q := r.URL.Query()

	scope, err := access.ReadScope(id, access.ViewMode(q.Get("viewMode")), q.Get("viewUser"))
	if err != nil {
		return access.Scope{}, task.Filters{}, err
	}

	filters := task.Filters{
		Date:      q.Get("date"),
		Category:  q.Get("category"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}

	if raw := q.Get("statusId"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			return access.Scope{}, task.Filters{}, service.NewValidationError("statusId", fmt.Sprintf("must be an integer, got %q", raw))
		}
		filters.StatusID = task.Status(status)
	}

	return scope, filters, nil
}
