package handlers

import (
	"net/http"
	"time"

	"taskBoard/internal/access"
	"taskBoard/internal/auth"
	"taskBoard/internal/handlers/dto"
	"taskBoard/internal/logger"

	"go.uber.org/zap"
)

type UserHandler struct {
	UserService UserService
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if err := requireAdmin(r); err != nil {
		handleError(w, r, err)
		return
	}

	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("users", dto.FromUserList(users)))
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if err := requireAdmin(r); err != nil {
		handleError(w, r, err)
		return
	}

	var request dto.CreateUserRequest
	if err := decodeBody(w, r, &request); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := h.UserService.CreateUser(r.Context(), request.ToInput())
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь создан",
		zap.String("username", created.Username),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("user", dto.FromUser(created)))
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request dto.LoginRequest
	if err := decodeBody(w, r, &request); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := h.UserService.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    res.Token,
		Path:     "/",
		Expires:  res.ExpiresAt,
		MaxAge:   int(time.Until(res.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	responseWithJSON(w, http.StatusOK,
		toPayload("token", res.Token),
		toPayload("expiresAt", res.ExpiresAt),
		toPayload("user", dto.SessionUser{Username: res.User.Username, IsAdmin: res.User.IsAdmin}))
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := access.FromContext(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("user", dto.SessionUser{Username: id.Username, IsAdmin: id.IsAdmin}))
}

func requireAdmin(r *http.Request) error {
	id, err := access.FromContext(r.Context())
	if err != nil {
		return err
	}
	if err := access.RequireAdmin(id); err != nil {
		logger.Warn("HTTP: Доступ только для админа",
			zap.String("username", id.Username),
			zap.String("path", r.URL.Path))
		return err
	}
	return nil
}
