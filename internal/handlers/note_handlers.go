package handlers

import (
	"net/http"

	"taskBoard/internal/access"
	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"
	"taskBoard/internal/service"

	"go.uber.org/zap"
)

// NoteHandler обслуживает недельный планировщик. Заметки всегда личные,
// админ тоже видит только свои.
type NoteHandler struct {
	NoteService NoteService
}

func NewNoteHandler(noteService NoteService) *NoteHandler {
	return &NoteHandler{NoteService: noteService}
}

func (h *NoteHandler) ListWeek(w http.ResponseWriter, r *http.Request) {
	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	notes, err := h.NoteService.ListWeek(r.Context(), id.Username, r.URL.Query().Get("weekStart"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("notes", dto.FromNoteList(notes)))
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	var request dto.CreateNoteRequest
	if err := decodeBody(w, r, &request); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := h.NoteService.CreateNote(r.Context(), id.Username, request.ToInput())
	if err != nil {
		handleError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusCreated, toPayload("note", dto.FromNote(created)))
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	var request dto.UpdateNoteRequest
	if err := decodeBody(w, r, &request); err != nil {
		handleError(w, r, err)
		return
	}
	if request.ID == "" {
		handleError(w, r, service.NewValidationError("id", "is required"))
		return
	}

	noteID, err := service.ParseID(request.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := h.NoteService.UpdateNote(r.Context(), id.Username, noteID, request.ToInput())
	if err != nil {
		handleError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("note", dto.FromNote(updated)))
}

// DeleteNote удаляет одну заметку по ?id= или очищает день по
// ?dayOfWeek=&weekStart=.
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	q := r.URL.Query()
	if raw := q.Get("id"); raw != "" {
		noteID, err := service.ParseID(raw)
		if err != nil {
			handleError(w, r, err)
			return
		}
		if err := h.NoteService.DeleteNote(r.Context(), id.Username, noteID); err != nil {
			handleError(w, r, err)
			return
		}
		responseWithJSON(w, http.StatusOK, toPayload("success", true))
		return
	}

	day, weekStart := q.Get("dayOfWeek"), q.Get("weekStart")
	if day == "" || weekStart == "" {
		logger.Warn("HTTP: Не указано что удалять",
			zap.String("query", r.URL.RawQuery),
			zap.String("client_ip", r.RemoteAddr))
		handleError(w, r, service.NewBusinessError(service.CodeValidation,
			"Provide id or dayOfWeek and weekStart"))
		return
	}

	deleted, err := h.NoteService.ClearDay(r.Context(), id.Username, day, weekStart)
	if err != nil {
		handleError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("success", true),
		toPayload("deletedCount", deleted))
}
