// Package create реализует HTTP-обработчик создания записи журнала активности.
//
// Запись создается от имени пользователя из тела запроса: не администратор
// может создавать записи только для себя. Момент активности не может быть
// в будущем.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	logservice "github.com/magabrotheeeer/fitness-tracker/internal/services/activitylog"
	"github.com/magabrotheeeer/fitness-tracker/internal/services/authz"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на создание записей активности.
type Handler struct {
	log      *slog.Logger
	service  Service
	access   Access
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания записи активности.
type Service interface {
	Create(ctx context.Context, req models.ActivityLogRequest) (*models.ActivityLogResponse, error)
}

// Access описывает интерфейс проверки права действовать от имени пользователя.
type Access interface {
	CanActForUser(ctx context.Context, p authz.Principal, userID int64) bool
}

// New создает новый Handler с переданными логгером, сервисом и проверкой доступа.
func New(log *slog.Logger, service Service, access Access) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		access:   access,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать запись активности
// @Description Создает запись журнала активности. Не администратор может создавать записи только для себя.
// @Tags ActivityLogs
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body models.ActivityLogRequest true "Данные новой записи"
// @Success 201 {object} models.ActivityLogResponse "Запись создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или момент в будущем"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Пользователь или план не найдены"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/activity-logs [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activitylog.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ActivityLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Int64("user_id", req.UserID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(r, err.(validator.ValidationErrors)))
		return
	}

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(r, http.StatusUnauthorized, "unauthorized"))
		return
	}

	if !h.access.CanActForUser(r.Context(), principal, req.UserID) {
		log.Error("access denied", slog.Int64("user_id", req.UserID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(r, http.StatusForbidden,
			fmt.Sprintf("Access denied: You are not allowed to create activity log for user ID %d", req.UserID)))
		return
	}

	entry, err := h.service.Create(r.Context(), req)
	switch {
	case errors.Is(err, logservice.ErrDateTimeInFuture):
		log.Error("activity moment in the future", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, err.Error()))
		return
	case errors.Is(err, repository.ErrNotFound):
		log.Error("referenced entity not found", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(r, http.StatusNotFound, "referenced entity not found"))
		return
	case err != nil:
		log.Error("failed to create activity log", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not create activity log"))
		return
	}

	log.Info("activity log created", slog.Int64("id", entry.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, entry)
}
