package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// MockLogRepository реализует интерфейс LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) CreateLog(ctx context.Context, log models.ActivityLog) (int64, error) {
	args := m.Called(ctx, log)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLogRepository) GetLog(ctx context.Context, id int64) (*models.ActivityLogDetails, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.ActivityLogDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLogRepository) ListLogs(ctx context.Context) ([]*models.ActivityLogDetails, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.ActivityLogDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLogRepository) ListLogsByUser(ctx context.Context, userID int64) ([]*models.ActivityLogDetails, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.([]*models.ActivityLogDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLogRepository) ListLogsByUserAndRange(ctx context.Context, userID int64, from, to time.Time) ([]*models.ActivityLogDetails, error) {
	args := m.Called(ctx, userID, from, to)
	if res := args.Get(0); res != nil {
		return res.([]*models.ActivityLogDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLogRepository) ListLogsByUserAndType(ctx context.Context, userID int64, activityType string) ([]*models.ActivityLogDetails, error) {
	args := m.Called(ctx, userID, activityType)
	if res := args.Get(0); res != nil {
		return res.([]*models.ActivityLogDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLogRepository) UpdateLog(ctx context.Context, log models.ActivityLog, id int64) (int64, error) {
	args := m.Called(ctx, log, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLogRepository) DeleteLog(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLogRepository) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLogRepository) GetPlan(ctx context.Context, id int64) (*models.WorkoutPlanDetails, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.WorkoutPlanDetails), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func logDetails(id int64) *models.ActivityLogDetails {
	return &models.ActivityLogDetails{
		ActivityLog: models.ActivityLog{
			ID:              id,
			ActivityName:    "Morning run",
			DateTime:        time.Now().Add(-time.Hour),
			DurationMinutes: 45,
			ActivityType:    models.ActivityCardio,
			UserID:          1,
		},
		User: models.User{ID: 1, Username: "alice"},
	}
}

func TestCreateLog(t *testing.T) {
	pastMoment := time.Now().Add(-time.Hour).Format(models.DateTimeLayout)
	futureMoment := time.Now().Add(time.Hour).Format(models.DateTimeLayout)
	planID := int64(10)

	tests := []struct {
		name      string
		req       models.ActivityLogRequest
		setupMock func(*MockLogRepository, *MockCache)
		wantErr   error
	}{
		{
			name: "успешное создание с привязкой к плану",
			req: models.ActivityLogRequest{
				ActivityName:    "Morning run",
				DateTime:        pastMoment,
				DurationMinutes: 45,
				ActivityType:    models.ActivityCardio,
				UserID:          1,
				WorkoutPlanID:   &planID,
			},
			setupMock: func(repo *MockLogRepository, cache *MockCache) {
				repo.On("GetUser", mock.Anything, int64(1)).
					Return(&models.User{ID: 1, Username: "alice"}, nil)
				repo.On("GetPlan", mock.Anything, planID).
					Return(&models.WorkoutPlanDetails{}, nil)
				repo.On("CreateLog", mock.Anything, mock.Anything).Return(int64(5), nil)
				repo.On("GetLog", mock.Anything, int64(5)).Return(logDetails(5), nil)
				cache.On("Set", "activitylog:5", mock.Anything, time.Hour).Return(nil)
			},
		},
		{
			name: "момент активности в будущем",
			req: models.ActivityLogRequest{
				ActivityName:    "Morning run",
				DateTime:        futureMoment,
				DurationMinutes: 45,
				UserID:          1,
			},
			setupMock: func(_ *MockLogRepository, _ *MockCache) {},
			wantErr:   ErrDateTimeInFuture,
		},
		{
			name: "несуществующий владелец",
			req: models.ActivityLogRequest{
				ActivityName:    "Morning run",
				DateTime:        pastMoment,
				DurationMinutes: 45,
				UserID:          42,
			},
			setupMock: func(repo *MockLogRepository, _ *MockCache) {
				repo.On("GetUser", mock.Anything, int64(42)).
					Return(nil, repository.ErrNotFound)
			},
			wantErr: repository.ErrNotFound,
		},
		{
			name: "несуществующий план валит операцию целиком",
			req: models.ActivityLogRequest{
				ActivityName:    "Morning run",
				DateTime:        pastMoment,
				DurationMinutes: 45,
				UserID:          1,
				WorkoutPlanID:   &planID,
			},
			setupMock: func(repo *MockLogRepository, _ *MockCache) {
				repo.On("GetUser", mock.Anything, int64(1)).
					Return(&models.User{ID: 1, Username: "alice"}, nil)
				repo.On("GetPlan", mock.Anything, planID).
					Return(nil, repository.ErrNotFound)
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLogRepository)
			cache := new(MockCache)
			tt.setupMock(repo, cache)
			service := NewActivityLogService(repo, cache, testLogger())

			resp, err := service.Create(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				repo.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(5), resp.ID)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestUpdateLog_NilPlanClearsAssociation(t *testing.T) {
	pastMoment := time.Now().Add(-time.Hour).Format(models.DateTimeLayout)

	repo := new(MockLogRepository)
	cache := new(MockCache)
	repo.On("GetLog", mock.Anything, int64(5)).Return(logDetails(5), nil)
	repo.On("GetUser", mock.Anything, int64(1)).
		Return(&models.User{ID: 1, Username: "alice"}, nil)
	repo.On("UpdateLog", mock.Anything, mock.MatchedBy(func(l models.ActivityLog) bool {
		return l.WorkoutPlanID == nil
	}), int64(5)).Return(int64(1), nil)
	cache.On("Set", "activitylog:5", mock.Anything, time.Hour).Return(nil)

	service := NewActivityLogService(repo, cache, testLogger())

	resp, err := service.Update(context.Background(), 5, models.ActivityLogRequest{
		ActivityName:    "Morning run",
		DateTime:        pastMoment,
		DurationMinutes: 45,
		UserID:          1,
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestListLogsByUser_Filters(t *testing.T) {
	from := time.Now().Add(-24 * time.Hour)
	to := time.Now()

	tests := []struct {
		name      string
		filter    ListFilter
		setupMock func(*MockLogRepository)
	}{
		{
			name:   "интервал применяется только с обеими границами",
			filter: ListFilter{From: &from, To: &to},
			setupMock: func(m *MockLogRepository) {
				m.On("ListLogsByUserAndRange", mock.Anything, int64(1), from, to).
					Return([]*models.ActivityLogDetails{logDetails(5)}, nil)
			},
		},
		{
			name:   "одна граница игнорируется",
			filter: ListFilter{From: &from},
			setupMock: func(m *MockLogRepository) {
				m.On("ListLogsByUser", mock.Anything, int64(1)).
					Return([]*models.ActivityLogDetails{logDetails(5)}, nil)
			},
		},
		{
			name:   "фильтр по типу активности",
			filter: ListFilter{ActivityType: models.ActivityCardio},
			setupMock: func(m *MockLogRepository) {
				m.On("ListLogsByUserAndType", mock.Anything, int64(1), models.ActivityCardio).
					Return([]*models.ActivityLogDetails{logDetails(5)}, nil)
			},
		},
		{
			name:   "без фильтров",
			filter: ListFilter{},
			setupMock: func(m *MockLogRepository) {
				m.On("ListLogsByUser", mock.Anything, int64(1)).
					Return([]*models.ActivityLogDetails{logDetails(5)}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLogRepository)
			cache := new(MockCache)
			tt.setupMock(repo)
			service := NewActivityLogService(repo, cache, testLogger())

			resp, err := service.ListByUser(context.Background(), 1, tt.filter)

			assert.NoError(t, err)
			assert.Len(t, resp, 1)
			repo.AssertExpectations(t)
		})
	}
}

func TestDeleteLog_NotFound(t *testing.T) {
	repo := new(MockLogRepository)
	cache := new(MockCache)
	cache.On("Invalidate", "activitylog:99").Return(nil)
	repo.On("DeleteLog", mock.Anything, int64(99)).Return(int64(0), nil)

	service := NewActivityLogService(repo, cache, testLogger())

	err := service.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, repository.ErrNotFound)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}
