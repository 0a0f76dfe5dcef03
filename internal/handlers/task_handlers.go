package handlers

import (
	"net/http"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) *TaskHandler {
	return &TaskHandler{
		TaskService: taskService,
	}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	scope, filters, err := taskQuery(r, id)
	if err != nil {
		logger.Warn("HTTP: Неверные параметры выборки",
			zap.String("query", r.URL.RawQuery),
			zap.String("client_ip", r.RemoteAddr))
		handleError(w, r, err)
		return
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), scope, filters)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.String("scope", scope.String()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks)))
}

func (h *TaskHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	scope, filters, err := taskQuery(r, id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := h.TaskService.Summary(r.Context(), scope, filters)
	if err != nil {
		handleError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("summary", summary))
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	var request dto.CreateTaskRequest
	if err := decodeBody(w, r, &request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		handleError(w, r, err)
		return
	}

	owner := access.TaskOwner(id, request.UserID)
	created, err := h.TaskService.CreateTask(r.Context(), request.ToInput(owner))
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.Hex()),
		zap.String("owner", owner),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("task", dto.FromTask(created)))
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	taskID, err := service.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	found, err := h.TaskService.GetTask(r.Context(), taskID, access.RecordScope(id))
	if err != nil {
		handleError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(found)))
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	taskID, err := service.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	var request dto.UpdateTaskRequest
	if err := decodeBody(w, r, &request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("task_id", taskID.Hex()))
		handleError(w, r, err)
		return
	}

	updated, err := h.TaskService.UpdateTask(r.Context(), taskID, request.ToInput(), access.RecordScope(id))
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", taskID.Hex()),
		zap.Duration("ms", time.Since(start)))

	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(updated)))
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	taskID, err := service.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), taskID, access.RecordScope(id)); err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена", zap.String("task_id", taskID.Hex()))
	responseWithJSON(w, http.StatusOK, toPayload("success", true))
}

// HealthCheck не требует сессии: его опрашивают балансировщик и оркестратор.
func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Хранилище недоступно", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("error", "storage unavailable"))
		return
	}
	responseWithJSON(w, http.StatusOK, toPayload("status", "ok"))
}
