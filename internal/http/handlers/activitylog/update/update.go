// Package update реализует HTTP-обработчик обновления записи журнала активности.
//
// Не администратор может обновлять записи только от своего имени. Владелец
// записи при обновлении не меняется; отсутствие workoutPlanId в запросе
// снимает привязку записи к плану.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
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

// Handler управляет HTTP-запросами на обновление записей активности.
type Handler struct {
	log      *slog.Logger
	service  Service
	access   Access
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления записи активности.
type Service interface {
	Update(ctx context.Context, id int64, req models.ActivityLogRequest) (*models.ActivityLogResponse, error)
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
// @Summary Обновить запись активности
// @Description Обновляет запись журнала. Отсутствие workoutPlanId снимает привязку к плану.
// @Tags ActivityLogs
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "ID записи"
// @Param request body models.ActivityLogRequest true "Новые данные записи"
// @Success 200 {object} models.ActivityLogResponse "Обновленная запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или момент в будущем"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/activity-logs/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activitylog.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid activity log id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid activity log id"))
		return
	}

	var req models.ActivityLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid request body"))
		return
	}

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
			fmt.Sprintf("Access denied: You are not allowed to update activity log for user ID %d", req.UserID)))
		return
	}

	entry, err := h.service.Update(r.Context(), id, req)
	switch {
	case errors.Is(err, logservice.ErrDateTimeInFuture):
		log.Error("activity moment in the future", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, err.Error()))
		return
	case errors.Is(err, repository.ErrNotFound):
		log.Error("activity log not found", slog.Int64("log_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(r, http.StatusNotFound,
			fmt.Sprintf("ActivityLog not found with id: %d", id)))
		return
	case err != nil:
		log.Error("failed to update activity log", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not update activity log"))
		return
	}

	log.Info("activity log updated", slog.Int64("id", entry.ID))
	render.JSON(w, r, entry)
}
