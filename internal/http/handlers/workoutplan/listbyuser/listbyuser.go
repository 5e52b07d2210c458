// Package listbyuser реализует HTTP-обработчик получения планов тренировок
// конкретного пользователя, при необходимости с фильтром по сложности.
//
// Доступ разрешен администратору либо самому пользователю.
package listbyuser

import (
	"context"
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
)

// Handler управляет HTTP-запросами на получение планов пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
	access  Access
}

// Service описывает интерфейс бизнес-логики выборки планов пользователя.
// Пустая сложность означает выборку без фильтра.
type Service interface {
	ListByUser(ctx context.Context, userID int64, difficulty string) ([]*models.WorkoutPlanResponse, error)
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
// @Summary Получить планы пользователя
// @Description Возвращает планы пользователя, опционально отфильтрованные по сложности.
// @Tags WorkoutPlans
// @Produce json
// @Security BasicAuth
// @Param userId path int true "ID пользователя"
// @Param difficultyLevel path string false "Уровень сложности (BEGINNER, INTERMEDIATE, ADVANCED)"
// @Success 200 {array} models.WorkoutPlanResponse "Планы пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или сложность"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /api/workout-plans/user/{userId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.workoutplan.listbyuser"
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

	difficulty := chi.URLParam(r, "difficultyLevel")
	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		log.Error("invalid difficulty level", slog.String("difficulty", difficulty))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(r, http.StatusBadRequest, "invalid difficulty level"))
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
			fmt.Sprintf("Access denied: You are not allowed to view workout plans for user ID %d", userID)))
		return
	}

	plans, err := h.service.ListByUser(r.Context(), userID, difficulty)
	if err != nil {
		log.Error("failed to list workout plans by user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error(r, http.StatusInternalServerError, "could not list workout plans"))
		return
	}

	log.Info("workout plans listed",
		slog.Int64("user_id", userID), slog.Int("count", len(plans)))
	render.JSON(w, r, plans)
}
