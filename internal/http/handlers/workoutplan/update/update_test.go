package update

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	"github.com/magabrotheeeer/fitness-tracker/internal/services/authz"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id int64, req models.WorkoutPlanRequest) (*models.WorkoutPlanResponse, error) {
	args := m.Called(ctx, id, req)
	if res := args.Get(0); res != nil {
		return res.(*models.WorkoutPlanResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAccess реализует интерфейс update.Access
type MockAccess struct {
	mock.Mock
}

func (m *MockAccess) CanAccessPlan(ctx context.Context, p authz.Principal, planID int64) bool {
	args := m.Called(ctx, p, planID)
	return args.Bool(0)
}

func TestUpdateWorkoutPlanHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	admin := authz.Principal{UserID: 99, Username: "admin", Role: models.RoleAdmin}
	bob := authz.Principal{UserID: 2, Username: "bob", Role: models.RoleRegular}

	validBody := `{"name":"Strength v2","startDate":"2030-01-01","userId":2}`

	tests := []struct {
		name           string
		id             string
		principal      authz.Principal
		body           string
		setupMock      func(*MockService, *MockAccess)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "владелец обновляет свой план",
			id:        "10",
			principal: bob,
			body:      validBody,
			setupMock: func(s *MockService, a *MockAccess) {
				a.On("CanAccessPlan", mock.Anything, bob, int64(10)).Return(true)
				s.On("Update", mock.Anything, int64(10), mock.MatchedBy(func(req models.WorkoutPlanRequest) bool {
					return req.Name == "Strength v2" && req.UserID == 2
				})).Return(&models.WorkoutPlanResponse{
					ID:   10,
					Name: "Strength v2",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Strength v2"`,
		},
		{
			name:      "отказ не владельцу раньше разбора тела",
			id:        "77",
			principal: bob,
			body:      validBody,
			setupMock: func(_ *MockService, a *MockAccess) {
				a.On("CanAccessPlan", mock.Anything, bob, int64(77)).Return(false)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Access denied: You are not allowed to update workout plan with ID 77",
		},
		{
			name:      "план не найден",
			id:        "77",
			principal: admin,
			body:      validBody,
			setupMock: func(s *MockService, a *MockAccess) {
				a.On("CanAccessPlan", mock.Anything, admin, int64(77)).Return(true)
				s.On("Update", mock.Anything, int64(77), mock.Anything).Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "WorkoutPlan not found with id: 77",
		},
		{
			name:      "некорректный JSON",
			id:        "10",
			principal: bob,
			body:      `{"name":`,
			setupMock: func(_ *MockService, a *MockAccess) {
				a.On("CanAccessPlan", mock.Anything, bob, int64(10)).Return(true)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid request body"`,
		},
		{
			name:      "ошибка валидации с картой полей",
			id:        "10",
			principal: bob,
			body:      `{"name":"Strength","startDate":"not-a-date","userId":2}`,
			setupMock: func(_ *MockService, a *MockAccess) {
				a.On("CanAccessPlan", mock.Anything, bob, int64(10)).Return(true)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"startDate"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockAccess := new(MockAccess)
			tt.setupMock(mockService, mockAccess)

			handler := New(logger, mockService, mockAccess)

			req := httptest.NewRequest(http.MethodPut, "/api/workout-plans/"+tt.id, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			// Устанавливаем URL params с помощью роутера chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.PrincipalKey, tt.principal)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			if tt.expectedStatus == http.StatusForbidden {
				mockService.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}

			mockService.AssertExpectations(t)
			mockAccess.AssertExpectations(t)
		})
	}
}
