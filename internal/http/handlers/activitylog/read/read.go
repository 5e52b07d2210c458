// Package read реализует HTTP-обработчик чтения записи журнала активности по ID.
//
// Доступ разрешен только администратору.
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
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на чтение записи активности.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения записи активности.
type Service interface {
	Read(ctx context.Context, id int64) (*models.ActivityLogResponse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить запись активности по ID
// @Description Возвращает запись журнала активности. Только для администратора.
// @Tags ActivityLogs
// @Produce json
// @Security BasicAuth
// @Param id path int true "ID записи"
// @Success 200 {object} models.ActivityLogResponse "Запись активности"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/activity-logs/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.activitylog.read"
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

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(r, http.StatusUnauthorized, "unauthorized"))
		return
	}

	if !principal.IsAdmin() {
		log.Error("access denied", slog.Int64("log_id", id))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(r, http.StatusForbidden,
			fmt.Sprintf("Access denied: You are not allowed to view activity log with ID %d", id)))
		return
	}

	entry, err := h.service.Read(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		log.Error("activity log not found", slog.Int64("log_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(r, http.StatusNotFound,
			fmt.Sprintf("ActivityLog not found with id: %d", id)))
		return
	}
	if err != nil {
		log.Error("failed to read activity log", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not read activity log"))
		return
	}

	log.Info("activity log read", slog.Int64("id", entry.ID))
	render.JSON(w, r, entry)
}
