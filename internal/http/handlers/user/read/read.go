// Package read реализует HTTP-обработчик чтения профиля пользователя по ID.
//
// Доступ разрешен администратору либо владельцу профиля.
package read

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	"github.com/magabrotheeeer/fitness-tracker/internal/services/authz"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на чтение профиля пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
	access  Access
}

// Service описывает интерфейс бизнес-логики чтения пользователя.
type Service interface {
	Read(ctx context.Context, id int64) (*models.UserResponse, error)
}

// Access описывает интерфейс проверки прав доступа к профилю.
type Access interface {
	CanAccessUser(ctx context.Context, p authz.Principal, userID int64) bool
}

// New создает новый Handler с переданными логгером, сервисом и проверкой доступа.
func New(log *slog.Logger, service Service, access Access) *Handler {
	return &Handler{
		log:     log,
		service: service,
		access:  access,
	}
}

// ServeHTTP godoc
// @Summary Получить пользователя по ID
// @Description Возвращает профиль пользователя. Доступно администратору или самому пользователю.
// @Tags Users
// @Produce json
// @Security BasicAuth
// @Param id path int true "ID пользователя"
// @Success 200 {object} models.UserResponse "Профиль пользователя"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid user id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid user id"))
		return
	}

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(r, http.StatusUnauthorized, "unauthorized"))
		return
	}

	if !h.access.CanAccessUser(r.Context(), principal, id) {
		log.Error("access denied", slog.Int64("user_id", id))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(r, http.StatusForbidden,
			fmt.Sprintf("Access denied: You are not allowed to view profile for user ID %d", id)))
		return
	}

	user, err := h.service.Read(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Error("user not found", slog.Int64("user_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(r, http.StatusNotFound,
			fmt.Sprintf("User not found with id: %d", id)))
		return
	}
	if err != nil {
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not read user"))
		return
	}

	log.Info("user read", slog.Int64("id", user.ID))
	render.JSON(w, r, user)
}
