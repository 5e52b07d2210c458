// Package search реализует HTTP-обработчик поиска планов тренировок по имени.
//
// Поиск по подстроке без учета регистра. Доступ открытый.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Handler управляет HTTP-запросами на поиск планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска планов.
type Service interface {
	Search(ctx context.Context, name string) ([]*models.WorkoutPlanResponse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Найти планы тренировок по имени
// @Description Возвращает планы, имя которых содержит подстроку без учета регистра. Открытый доступ.
// @Tags WorkoutPlans
// @Produce json
// @Param name query string true "Подстрока имени"
// @Success 200 {array} models.WorkoutPlanResponse "Найденные планы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/workout-plans/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workoutplan.search"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name := r.URL.Query().Get("name")

	plans, err := h.service.Search(r.Context(), name)
	if err != nil {
		log.Error("failed to search workout plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not search workout plans"))
		return
	}

	log.Info("workout plans searched", slog.String("name", name), slog.Int("count", len(plans)))
	render.JSON(w, r, plans)
}
