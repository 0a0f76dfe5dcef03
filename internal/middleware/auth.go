package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"taskBoard/internal/access"
	"taskBoard/internal/auth"
	"taskBoard/internal/logger"

	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (access.Identity, error)
}

// Authenticate кладёт access.Identity в контекст запроса. Токен берётся из
// заголовка Authorization: Bearer, иначе из cookie. Без валидного токена 401.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				unauthorized(w, r, "missing token")
				return
			}

			id, err := tokens.Parse(raw)
			if err != nil {
				logger.Warn("HTTP: Невалидный токен",
					zap.Error(err),
					zap.String("client_ip", r.RemoteAddr),
					zap.String("request_id", GetRequestID(r.Context())))
				unauthorized(w, r, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":      "Unauthorized",
		"code":       "UNAUTHORIZED",
		"details":    map[string]string{"reason": reason},
		"request_id": GetRequestID(r.Context()),
	})
}
