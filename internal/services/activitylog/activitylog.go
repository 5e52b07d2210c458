// Package services содержит бизнес-логику для управления журналом активности:
// проверку момента активности, разрешение ссылок на владельца и план
// тренировок при записи и кеширование записей.
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

// ErrDateTimeInFuture возвращается, если момент активности в будущем.
var ErrDateTimeInFuture = errors.New("activity date cannot be in the future")

// LogRepository определяет методы для работы с журналом активности в хранилище.
type LogRepository interface {
	// CreateLog добавляет новую запись и возвращает её ID.
	CreateLog(ctx context.Context, log models.ActivityLog) (int64, error)
	// GetLog возвращает запись вместе с владельцем и планом.
	GetLog(ctx context.Context, id int64) (*models.ActivityLogDetails, error)
	// ListLogs возвращает все записи.
	ListLogs(ctx context.Context) ([]*models.ActivityLogDetails, error)
	// ListLogsByUser возвращает записи пользователя.
	ListLogsByUser(ctx context.Context, userID int64) ([]*models.ActivityLogDetails, error)
	// ListLogsByUserAndRange возвращает записи пользователя за интервал.
	ListLogsByUserAndRange(ctx context.Context, userID int64, from, to time.Time) ([]*models.ActivityLogDetails, error)
	// ListLogsByUserAndType возвращает записи пользователя по типу активности.
	ListLogsByUserAndType(ctx context.Context, userID int64, activityType string) ([]*models.ActivityLogDetails, error)
	// UpdateLog обновляет запись, возвращает число строк.
	UpdateLog(ctx context.Context, log models.ActivityLog, id int64) (int64, error)
	// DeleteLog удаляет запись, возвращает число строк.
	DeleteLog(ctx context.Context, id int64) (int64, error)
	// GetUser разрешает ссылку на владельца при записи.
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// GetPlan разрешает ссылку на план при записи.
	GetPlan(ctx context.Context, id int64) (*models.WorkoutPlanDetails, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// ActivityLogService реализует бизнес-логику работы с журналом активности.
type ActivityLogService struct {
	repo  LogRepository
	cache Cache
	log   *slog.Logger
}

// NewActivityLogService создает новый экземпляр ActivityLogService.
func NewActivityLogService(repo LogRepository, cache Cache, log *slog.Logger) *ActivityLogService {
	return &ActivityLogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListFilter опциональные фильтры выборки записей пользователя.
// Интервал применяется только когда заданы обе границы.
type ListFilter struct {
	From         *time.Time
	To           *time.Time
	ActivityType string
}

func (s *ActivityLogService) resolveRefs(ctx context.Context, req models.ActivityLogRequest) (time.Time, error) {
	dateTime, err := time.Parse(models.DateTimeLayout, req.DateTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date time: %w", err)
	}
	if dateTime.After(time.Now()) {
		return time.Time{}, ErrDateTimeInFuture
	}
	if _, err := s.repo.GetUser(ctx, req.UserID); err != nil {
		return time.Time{}, err
	}
	if req.WorkoutPlanID != nil {
		if _, err := s.repo.GetPlan(ctx, *req.WorkoutPlanID); err != nil {
			return time.Time{}, err
		}
	}
	return dateTime, nil
}

// Create создает новую запись журнала. Ссылки на владельца и план
// разрешаются по хранилищу до записи: несуществующая ссылка валит
// операцию целиком, частичных записей не бывает.
func (s *ActivityLogService) Create(ctx context.Context, req models.ActivityLogRequest) (*models.ActivityLogResponse, error) {
	dateTime, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	entry := models.ActivityLog{
		ActivityName:    req.ActivityName,
		Description:     req.Description,
		DateTime:        dateTime,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		ActivityType:    req.ActivityType,
		UserID:          req.UserID,
		WorkoutPlanID:   req.WorkoutPlanID,
	}
	id, err := s.repo.CreateLog(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new activity log", slog.Int64("id", id))

	details, err := s.repo.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}
	cacheKey := fmt.Sprintf("activitylog:%d", id)
	if err := s.cache.Set(cacheKey, details, time.Hour); err != nil {
		s.log.Warn("failed to cache activity log", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return models.NewActivityLogResponse(details), nil
}

// Read возвращает запись по ID, используя кеш или хранилище.
func (s *ActivityLogService) Read(ctx context.Context, id int64) (*models.ActivityLogResponse, error) {
	var details *models.ActivityLogDetails
	cacheKey := fmt.Sprintf("activitylog:%d", id)
	found, err := s.cache.Get(cacheKey, &details)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if !found {
		details, err = s.repo.GetLog(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, details, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return models.NewActivityLogResponse(details), nil
}

// List возвращает все записи журнала.
func (s *ActivityLogService) List(ctx context.Context) ([]*models.ActivityLogResponse, error) {
	return s.toResponses(s.repo.ListLogs(ctx))
}

// ListByUser возвращает записи пользователя с опциональными фильтрами
// по интервалу времени или типу активности.
func (s *ActivityLogService) ListByUser(ctx context.Context, userID int64, filter ListFilter) ([]*models.ActivityLogResponse, error) {
	switch {
	case filter.From != nil && filter.To != nil:
		return s.toResponses(s.repo.ListLogsByUserAndRange(ctx, userID, *filter.From, *filter.To))
	case filter.ActivityType != "":
		return s.toResponses(s.repo.ListLogsByUserAndType(ctx, userID, filter.ActivityType))
	default:
		return s.toResponses(s.repo.ListLogsByUser(ctx, userID))
	}
}

// Update обновляет запись по ID. Владелец записи не меняется; отсутствующий
// workoutPlanId снимает привязку к плану. Кеш перезаписывается.
func (s *ActivityLogService) Update(ctx context.Context, id int64, req models.ActivityLogRequest) (*models.ActivityLogResponse, error) {
	if _, err := s.repo.GetLog(ctx, id); err != nil {
		return nil, err
	}
	dateTime, err := s.resolveRefs(ctx, req)
	if err != nil {
		return nil, err
	}

	entry := models.ActivityLog{
		ActivityName:    req.ActivityName,
		Description:     req.Description,
		DateTime:        dateTime,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		ActivityType:    req.ActivityType,
		WorkoutPlanID:   req.WorkoutPlanID,
	}
	count, err := s.repo.UpdateLog(ctx, entry, id)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, repository.ErrNotFound
	}
	s.log.Info("updated activity log", slog.Int64("id", id))

	details, err := s.repo.GetLog(ctx, id)
	if err != nil {
		return nil, err
	}
	cacheKey := fmt.Sprintf("activitylog:%d", id)
	if err := s.cache.Set(cacheKey, details, time.Hour); err != nil {
		s.log.Warn("failed to cache activity log", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return models.NewActivityLogResponse(details), nil
}

// Delete удаляет запись по ID и инвалидирует кеш.
func (s *ActivityLogService) Delete(ctx context.Context, id int64) error {
	cacheKey := fmt.Sprintf("activitylog:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.DeleteLog(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	s.log.Info("deleted activity log", slog.Int64("id", id))
	return nil
}

func (s *ActivityLogService) toResponses(details []*models.ActivityLogDetails, err error) ([]*models.ActivityLogResponse, error) {
	if err != nil {
		return nil, err
	}
	result := make([]*models.ActivityLogResponse, 0, len(details))
	for _, d := range details {
		result = append(result, models.NewActivityLogResponse(d))
	}
	return result, nil
}
