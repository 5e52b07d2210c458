// Package middlewarectx содержит HTTP middleware для аутентификации запросов.
//
// AuthMiddleware принимает два вида заголовка Authorization: Basic с парой
// логин/пароль и Bearer с JWT токеном. В случае успеха кладет в контекст
// запроса принципала (идентификатор, имя и роль пользователя) для дальнейших
// проверок доступа в обработчиках. При ошибке возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	"github.com/magabrotheeeer/fitness-tracker/internal/services/authz"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// PrincipalKey — ключ для принципала в контексте.
const PrincipalKey Key = "principal"

// Service описывает интерфейс сервиса аутентификации.
type Service interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// PrincipalFromContext извлекает принципала из контекста запроса.
func PrincipalFromContext(ctx context.Context) (authz.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(authz.Principal)
	return p, ok
}

// AuthMiddleware создает middleware, проверяющий заголовок Authorization.
// Поддерживаются схемы Basic (логин и пароль) и Bearer (JWT токен).
// Если аутентификация прошла, добавляет принципала в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "auth.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")

			var principal authz.Principal
			switch {
			case strings.HasPrefix(authHeader, "Basic "):
				username, pass, ok := decodeBasic(authHeader)
				if !ok {
					log.Error("malformed basic authorization header")
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error(r, http.StatusUnauthorized,
						"missing or invalid authorization header"))
					return
				}
				user, err := authService.Authenticate(r.Context(), username, pass)
				if err != nil {
					log.Error("invalid credentials", sl.Err(err))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error(r, http.StatusUnauthorized,
						"invalid username or password"))
					return
				}
				principal = authz.Principal{
					UserID:   user.ID,
					Username: user.Username,
					Role:     user.Role,
				}
			case strings.HasPrefix(authHeader, "Bearer "):
				tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
				claims, err := authService.ParseToken(tokenStr)
				if err != nil {
					log.Error("invalid or expired token", sl.Err(err))
					render.Status(r, http.StatusUnauthorized)
					render.JSON(w, r, response.Error(r, http.StatusUnauthorized,
						"invalid or expired token"))
					return
				}
				principal = authz.Principal{
					UserID:   claims.UserID,
					Username: claims.Username,
					Role:     claims.Role,
				}
			default:
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(r, http.StatusUnauthorized,
					"missing or invalid authorization header"))
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func decodeBasic(header string) (username, password string, ok bool) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(raw), ":")
	return username, password, ok
}
