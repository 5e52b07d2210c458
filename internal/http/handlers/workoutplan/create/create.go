// Package create реализует HTTP-обработчик создания плана тренировок.
//
// Handler принимает JSON-запрос с данными плана, валидирует их, проверяет
// существование указанного создателя и возвращает созданное представление
// со статусом 201. Доступно любому аутентифицированному пользователю.
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

	"github.com/magabrotheeeer/fitness-tracker/internal/http/response"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	planservice "github.com/magabrotheeeer/fitness-tracker/internal/services/workoutplan"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на создание планов тренировок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания плана.
type Service interface {
	Create(ctx context.Context, req models.WorkoutPlanRequest) (*models.WorkoutPlanResponse, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать план тренировок
// @Description Создает новый план тренировок. Дата начала не может быть в прошлом.
// @Tags WorkoutPlans
// @Accept json
// @Produce json
// @Security BasicAuth
// @Param request body models.WorkoutPlanRequest true "Данные нового плана"
// @Success 201 {object} models.WorkoutPlanResponse "План создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или даты"
// @Failure 404 {object} response.ErrorResponse "Создатель не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/workout-plans [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workoutplan.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.WorkoutPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("name", req.Name))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(r, err.(validator.ValidationErrors)))
		return
	}

	plan, err := h.service.Create(r.Context(), req)
	switch {
	case errors.Is(err, planservice.ErrStartDateInPast),
		errors.Is(err, planservice.ErrEndDateNotInFuture):
		log.Error("invalid plan dates", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, err.Error()))
		return
	case errors.Is(err, repository.ErrNotFound):
		log.Error("creator not found", slog.Int64("user_id", req.UserID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(r, http.StatusNotFound,
			fmt.Sprintf("User not found with id: %d", req.UserID)))
		return
	case err != nil:
		log.Error("failed to create workout plan", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not create workout plan"))
		return
	}

	log.Info("workout plan created", slog.Int64("id", plan.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, plan)
}
