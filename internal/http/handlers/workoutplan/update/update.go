// Package update реализует HTTP-обработчик обновления плана тренировок.
//
// Доступ разрешен администратору либо создателю плана. Создатель плана при
// обновлении не меняется. Правила дат на обновление не распространяются.
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
	"github.com/magabrotheeeer/fitness-tracker/internal/services/authz"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на обновление плана тренировок.
type Handler struct {
	log      *slog.Logger
	service  Service
	access   Access
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления плана.
type Service interface {
	Update(ctx context.Context, id int64, req models.WorkoutPlanRequest) (*models.WorkoutPlanResponse, error)
}

// Access описывает интерфейс проверки прав доступа к плану.
type Access interface {
	CanAccessPlan(ctx context.Context, p authz.Principal, planID int64) bool
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
// @Summary Обновить план тренировок
// @Description Обновляет план тренировок. Создатель плана не меняется.
// @Tags WorkoutPlans
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param id path int true "ID плана"
// @Param request body models.WorkoutPlanRequest true "Новые данные плана"
// @Success 200 {object} models.WorkoutPlanResponse "Обновленный план"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/workout-plans/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workoutplan.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid workout plan id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid workout plan id"))
		return
	}

	principal, ok := middlewarectx.PrincipalFromContext(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(r, http.StatusUnauthorized, "unauthorized"))
		return
	}

	if !h.access.CanAccessPlan(r.Context(), principal, id) {
		log.Error("access denied", slog.Int64("plan_id", id))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(r, http.StatusForbidden,
			fmt.Sprintf("Access denied: You are not allowed to update workout plan with ID %d", id)))
		return
	}

	var req models.WorkoutPlanRequest
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

	plan, err := h.service.Update(r.Context(), id, req)
	if errors.Is(err, repository.ErrNotFound) {
		log.Error("workout plan not found", slog.Int64("plan_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(r, http.StatusNotFound,
			fmt.Sprintf("WorkoutPlan not found with id: %d", id)))
		return
	}
	if err != nil {
		log.Error("failed to update workout plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not update workout plan"))
		return
	}

	log.Info("workout plan updated", slog.Int64("id", plan.ID))
	render.JSON(w, r, plan)
}
