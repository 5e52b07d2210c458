// Package listbyuser реализует HTTP-обработчик получения журнала активности
// конкретного пользователя с необязательными фильтрами по временному окну
// (from и to вместе) и по типу активности.
//
// Доступ разрешен администратору либо самому пользователю.
package listbyuser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	logservice "github.com/magabrotheeeer/fitness-tracker/internal/services/activitylog"
	"github.com/magabrotheeeer/fitness-tracker/internal/services/authz"
)

// Handler управляет HTTP-запросами на получение журнала пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
	access  Access
}

// Service описывает интерфейс бизнес-логики выборки журнала пользователя.
type Service interface {
	ListByUser(ctx context.Context, userID int64, filter logservice.ListFilter) ([]*models.ActivityLogResponse, error)
}

// Access описывает интерфейс проверки прав доступа к данным пользователя.
type Access interface {
	CanActForUser(ctx context.Context, p authz.Principal, userID int64) bool
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
// @Summary Получить журнал активности пользователя
// @Description Возвращает записи пользователя с фильтрами по окну времени и типу активности.
// @Tags ActivityLogs
// @Produce json
// @Security BasicAuth
// @Param userId path int true "ID пользователя"
// @Param from query string false "Начало окна (2006-01-02T15:04:05)"
// @Param to query string false "Конец окна (2006-01-02T15:04:05)"
// @Param type query string false "Тип активности (CARDIO, STRENGTH, FLEXIBILITY, SPORTS, OTHER)"
// @Success 200 {array} models.ActivityLogResponse "Журнал пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/activity-logs/user/{userId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activitylog.listbyuser"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		log.Error("invalid user id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid user id"))
		return
	}

	filter, err := parseFilter(r)
	if err != nil {
		log.Error("invalid filter", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, err.Error()))
		return
	}

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(r, http.StatusUnauthorized, "unauthorized"))
		return
	}

	if !h.access.CanActForUser(r.Context(), principal, userID) {
		log.Error("access denied", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(r, http.StatusForbidden,
			fmt.Sprintf("Access denied: You are not allowed to view activity logs for user ID %d", userID)))
		return
	}

	entries, err := h.service.ListByUser(r.Context(), userID, filter)
	if err != nil {
		log.Error("failed to list activity logs by user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not list activity logs"))
		return
	}

	log.Info("activity logs listed",
		slog.Int64("user_id", userID), slog.Int("count", len(entries)))
	render.JSON(w, r, entries)
}

// parseFilter разбирает необязательные query-параметры from, to и type.
// Временное окно применяется только когда заданы обе границы.
func parseFilter(r *http.Request) (logservice.ListFilter, error) {
	var filter logservice.ListFilter

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(models.DateTimeLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid from parameter: %w", err)
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(models.DateTimeLayout, raw)
		if err != nil {
			return filter, fmt.Errorf("invalid to parameter: %w", err)
		}
		filter.To = &to
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		if !models.ValidActivityType(raw) {
			return filter, fmt.Errorf("invalid activity type: %s", raw)
		}
		filter.ActivityType = raw
	}
	return filter, nil
}
