package remove

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

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccess реализует интерфейс remove.Access
type MockAccess struct {
	mock.Mock
}

func (m *MockAccess) CanAccessUser(ctx context.Context, p authz.Principal, userID int64) bool {
	args := m.Called(ctx, p, userID)
	return args.Bool(0)
}

func TestRemoveUserHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	admin := authz.Principal{UserID: 99, Username: "admin", Role: models.RoleAdmin}
	alice := authz.Principal{UserID: 1, Username: "alice", Role: models.RoleRegular}

	tests := []struct {
		name           string
		id             string
		principal      authz.Principal
		setupMock      func(*MockService, *MockAccess)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "владелец удаляет свой профиль",
			id:        "1",
			principal: alice,
			setupMock: func(s *MockService, a *MockAccess) {
				a.On("CanAccessUser", mock.Anything, alice, int64(1)).Return(true)
				s.On("Delete", mock.Anything, int64(1)).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:      "чужой профиль запрещен до обращения к сервису",
			id:        "5",
			principal: alice,
			setupMock: func(_ *MockService, a *MockAccess) {
				a.On("CanAccessUser", mock.Anything, alice, int64(5)).Return(false)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "Access denied: You are not allowed to delete profile for user ID 5",
		},
		{
			name:      "пользователь не найден",
			id:        "7",
			principal: admin,
			setupMock: func(s *MockService, a *MockAccess) {
				a.On("CanAccessUser", mock.Anything, admin, int64(7)).Return(true)
				s.On("Delete", mock.Anything, int64(7)).Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "User not found with id: 7",
		},
		{
			name:           "некорректный id в URL",
			id:             "abc",
			principal:      admin,
			setupMock:      func(_ *MockService, _ *MockAccess) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid user id"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockAccess := new(MockAccess)
			tt.setupMock(mockService, mockAccess)

			handler := New(logger, mockService, mockAccess)

			req := httptest.NewRequest(http.MethodDelete, "/api/users/"+tt.id, nil)
			// Устанавливаем URL params с помощью роутера chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.PrincipalKey, tt.principal)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusNoContent {
				assert.Empty(t, w.Body.String())
			} else {
				assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
					"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			}
			if tt.expectedStatus == http.StatusForbidden {
				mockService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			}

			mockService.AssertExpectations(t)
			mockAccess.AssertExpectations(t)
		})
	}
}
