// Package list реализует HTTP-обработчик получения полного журнала активности.
//
// Доступ разрешен только администратору.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Handler управляет HTTP-запросами на получение журнала активности.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка записей активности.
type Service interface {
	List(ctx context.Context) ([]*models.ActivityLogResponse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить все записи активности
// @Description Возвращает полный журнал активности. Только для администратора.
// @Tags ActivityLogs
// @Produce json
// @Security BasicAuth
// @Success 200 {array} models.ActivityLogResponse "Журнал активности"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/activity-logs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activitylog.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(r, http.StatusUnauthorized, "unauthorized"))
		return
	}

	if !principal.IsAdmin() {
		log.Error("access denied", slog.String("username", principal.Username))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(r, http.StatusForbidden,
			"Access denied: You are not allowed to list activity logs"))
		return
	}

	entries, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list activity logs", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not list activity logs"))
		return
	}

	log.Info("activity logs listed", slog.Int("count", len(entries)))
	render.JSON(w, r, entries)
}
