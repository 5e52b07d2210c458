// Package services содержит бизнес-логику для управления планами тренировок,
// включая проверку дат, разрешение ссылки на создателя, каскадное удаление
// привязанных записей журнала и кеширование.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// Ошибки валидации дат плана.
var (
	ErrStartDateInPast    = errors.New("start date must be today or in the future")
	ErrEndDateNotInFuture = errors.New("end date must be in the future")
)

// PlanRepository определяет методы для работы с планами тренировок в хранилище.
type PlanRepository interface {
	// CreatePlan добавляет новый план и возвращает его ID.
	CreatePlan(ctx context.Context, plan models.WorkoutPlan) (int64, error)
	// GetPlan возвращает план вместе с данными создателя.
	GetPlan(ctx context.Context, id int64) (*models.WorkoutPlanDetails, error)
	// ListPlans возвращает все планы.
	ListPlans(ctx context.Context) ([]*models.WorkoutPlanDetails, error)
	// ListPlansByUser возвращает планы пользователя.
	ListPlansByUser(ctx context.Context, userID int64) ([]*models.WorkoutPlanDetails, error)
	// ListPlansByUserAndDifficulty возвращает планы пользователя заданной сложности.
	ListPlansByUserAndDifficulty(ctx context.Context, userID int64, difficulty string) ([]*models.WorkoutPlanDetails, error)
	// SearchPlansByName ищет планы по подстроке названия без учета регистра.
	SearchPlansByName(ctx context.Context, name string) ([]*models.WorkoutPlanDetails, error)
	// UpdatePlan обновляет план, возвращает число строк.
	UpdatePlan(ctx context.Context, plan models.WorkoutPlan, id int64) (int64, error)
	// DeletePlanWithLogs удаляет план с его записями журнала, возвращает их ID.
	DeletePlanWithLogs(ctx context.Context, id int64) ([]int64, error)
	// GetUser разрешает ссылку на создателя при записи.
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// WorkoutPlanService реализует бизнес-логику работы с планами тренировок.
type WorkoutPlanService struct {
	repo  PlanRepository
	cache Cache
	log   *slog.Logger
}

// NewWorkoutPlanService создает новый экземпляр WorkoutPlanService.
func NewWorkoutPlanService(repo PlanRepository, cache Cache, log *slog.Logger) *WorkoutPlanService {
	return &WorkoutPlanService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// parsePlanDates парсит строковые даты запроса. Правила "дата начала не в
// прошлом" и "дата окончания строго в будущем" действуют при создании.
func parsePlanDates(req models.WorkoutPlanRequest, enforce bool) (time.Time, *time.Time, error) {
	startDate, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("invalid start date: %w", err)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if enforce && startDate.Before(today) {
		return time.Time{}, nil, ErrStartDateInPast
	}
	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse(models.DateLayout, req.EndDate)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("invalid end date: %w", err)
		}
		if enforce && !parsed.After(today) {
			return time.Time{}, nil, ErrEndDateNotInFuture
		}
		endDate = &parsed
	}
	return startDate, endDate, nil
}

// Create создает новый план тренировок. Ссылка на создателя разрешается
// по хранилищу до записи: несуществующий userId валит операцию целиком.
func (s *WorkoutPlanService) Create(ctx context.Context, req models.WorkoutPlanRequest) (*models.WorkoutPlanResponse, error) {
	startDate, endDate, err := parsePlanDates(req, true)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	plan := models.WorkoutPlan{
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       startDate,
		EndDate:         endDate,
		DifficultyLevel: req.DifficultyLevel,
		UserID:          req.UserID,
	}
	id, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new workout plan", slog.Int64("id", id))

	details, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	cacheKey := fmt.Sprintf("workoutplan:%d", id)
	if err := s.cache.Set(cacheKey, details, time.Hour); err != nil {
		s.log.Warn("failed to cache workout plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return models.NewWorkoutPlanResponse(details), nil
}

// Read возвращает план по ID, используя кеш или хранилище.
func (s *WorkoutPlanService) Read(ctx context.Context, id int64) (*models.WorkoutPlanResponse, error) {
	var details *models.WorkoutPlanDetails
	cacheKey := fmt.Sprintf("workoutplan:%d", id)
	found, err := s.cache.Get(cacheKey, &details)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if !found {
		details, err = s.repo.GetPlan(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, details, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return models.NewWorkoutPlanResponse(details), nil
}

// List возвращает все планы тренировок.
func (s *WorkoutPlanService) List(ctx context.Context) ([]*models.WorkoutPlanResponse, error) {
	return s.toResponses(s.repo.ListPlans(ctx))
}

// ListByUser возвращает планы пользователя, опционально отфильтрованные
// по уровню сложности.
func (s *WorkoutPlanService) ListByUser(ctx context.Context, userID int64, difficulty string) ([]*models.WorkoutPlanResponse, error) {
	if difficulty != "" {
		return s.toResponses(s.repo.ListPlansByUserAndDifficulty(ctx, userID, difficulty))
	}
	return s.toResponses(s.repo.ListPlansByUser(ctx, userID))
}

// Search ищет планы по подстроке названия без учета регистра.
func (s *WorkoutPlanService) Search(ctx context.Context, name string) ([]*models.WorkoutPlanResponse, error) {
	return s.toResponses(s.repo.SearchPlansByName(ctx, name))
}

// Update обновляет план по ID и перезаписывает кеш. Создатель не меняется.
func (s *WorkoutPlanService) Update(ctx context.Context, id int64, req models.WorkoutPlanRequest) (*models.WorkoutPlanResponse, error) {
	if _, err := s.repo.GetPlan(ctx, id); err != nil {
		return nil, err
	}
	startDate, endDate, err := parsePlanDates(req, false)
	if err != nil {
		return nil, err
	}

	plan := models.WorkoutPlan{
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       startDate,
		EndDate:         endDate,
		DifficultyLevel: req.DifficultyLevel,
	}
	count, err := s.repo.UpdatePlan(ctx, plan, id)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, repository.ErrNotFound
	}
	s.log.Info("updated workout plan", slog.Int64("id", id))

	details, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	cacheKey := fmt.Sprintf("workoutplan:%d", id)
	if err := s.cache.Set(cacheKey, details, time.Hour); err != nil {
		s.log.Warn("failed to cache workout plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return models.NewWorkoutPlanResponse(details), nil
}

// Delete удаляет план и каскадно все его записи журнала одной транзакцией,
// затем инвалидирует кеш плана и удаленных записей.
func (s *WorkoutPlanService) Delete(ctx context.Context, id int64) error {
	logIDs, err := s.repo.DeletePlanWithLogs(ctx, id)
	if err != nil {
		return err
	}
	s.log.Info("deleted workout plan", slog.Int64("id", id), slog.Int("cascaded_logs", len(logIDs)))

	cacheKey := fmt.Sprintf("workoutplan:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	for _, logID := range logIDs {
		logKey := fmt.Sprintf("activitylog:%d", logID)
		if err := s.cache.Invalidate(logKey); err != nil {
			s.log.Warn("failed to remove from cache", slog.String("key", logKey), slog.Any("err", err))
		}
	}
	return nil
}

func (s *WorkoutPlanService) toResponses(details []*models.WorkoutPlanDetails, err error) ([]*models.WorkoutPlanResponse, error) {
	if err != nil {
		return nil, err
	}
	result := make([]*models.WorkoutPlanResponse, 0, len(details))
	for _, d := range details {
		result = append(result, models.NewWorkoutPlanResponse(d))
	}
	return result, nil
}
