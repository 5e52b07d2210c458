package create

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	"github.com/magabrotheeeer/fitness-tracker/internal/services/authz"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.ActivityLogRequest) (*models.ActivityLogResponse, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.ActivityLogResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAccess реализует интерфейс create.Access
type MockAccess struct {
	mock.Mock
}

func (m *MockAccess) CanActForUser(ctx context.Context, p authz.Principal, userID int64) bool {
	args := m.Called(ctx, p, userID)
	return args.Bool(0)
}

func TestCreateActivityLogHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pastMoment := time.Now().Add(-time.Hour).Format(models.DateTimeLayout)

	alice := authz.Principal{UserID: 2, Username: "alice", Role: models.RoleRegular}

	tests := []struct {
		name           string
		body           string
		principal      *authz.Principal
		setupMock      func(*MockService, *MockAccess)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание",
			body: `{"activityName":"Morning run","dateTime":"` + pastMoment +
				`","durationMinutes":45,"activityType":"CARDIO","userId":2}`,
			principal: &alice,
			setupMock: func(s *MockService, a *MockAccess) {
				a.On("CanActForUser", mock.Anything, alice, int64(2)).Return(true)
				s.On("Create", mock.Anything, mock.Anything).Return(&models.ActivityLogResponse{
					ID:              5,
					ActivityName:    "Morning run",
					DateTime:        pastMoment,
					DurationMinutes: 45,
					ActivityType:    models.ActivityCardio,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"activityName":"Morning run"`,
		},
		{
			name: "запись для чужого userId запрещена",
			body: `{"activityName":"Morning run","dateTime":"` + pastMoment +
				`","durationMinutes":45,"userId":1}`,
			principal: &alice,
			setupMock: func(_ *MockService, a *MockAccess) {
				a.On("CanActForUser", mock.Anything, alice, int64(1)).Return(false)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Access denied: You are not allowed to create activity log for user ID 1",
		},
		{
			name:           "без принципала в контексте",
			body:           `{"activityName":"Morning run","dateTime":"` + pastMoment + `","durationMinutes":45,"userId":2}`,
			principal:      nil,
			setupMock:      func(_ *MockService, _ *MockAccess) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"message":"unauthorized"`,
		},
		{
			name:           "длительность вне диапазона",
			body:           `{"activityName":"Morning run","dateTime":"` + pastMoment + `","durationMinutes":2000,"userId":2}`,
			principal:      &alice,
			setupMock:      func(_ *MockService, _ *MockAccess) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"durationMinutes":"field durationMinutes exceeds the maximum of 1440"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockAccess := new(MockAccess)
			tt.setupMock(mockService, mockAccess)

			handler := New(logger, mockService, mockAccess)

			req := httptest.NewRequest(http.MethodPost, "/api/activity-logs", strings.NewReader(tt.body))
			if tt.principal != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.PrincipalKey, *tt.principal)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
			mockAccess.AssertExpectations(t)
		})
	}
}
