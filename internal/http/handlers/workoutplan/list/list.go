// Package list реализует HTTP-обработчик получения списка всех планов тренировок.
//
// Доступ открытый, аутентификация не требуется.
package list

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

// Handler управляет HTTP-запросами на получение списка планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка планов.
type Service interface {
	List(ctx context.Context) ([]*models.WorkoutPlanResponse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить все планы тренировок
// @Description Возвращает список всех планов. Открытый доступ.
// @Tags WorkoutPlans
// @Produce json
// @Success 200 {array} models.WorkoutPlanResponse "Список планов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/workout-plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workoutplan.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list workout plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not list workout plans"))
		return
	}

	log.Info("workout plans listed", slog.Int("count", len(plans)))
	render.JSON(w, r, plans)
}
