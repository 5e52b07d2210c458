package create

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.UserRequest) (*models.UserResponse, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.UserResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateUserHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"alice","password":"secret123","email":"alice@example.com","fullName":"Alice Smith"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(&models.UserResponse{
					ID:       1,
					Username: "alice",
					Email:    "alice@example.com",
					FullName: "Alice Smith",
					Role:     models.RoleRegular,
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"alice"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"username":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid request body"`,
		},
		{
			name:           "ошибка валидации с картой поле-сообщение",
			body:           `{"username":"al","password":"secret123","email":"not-an-email","fullName":"Alice Smith"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"email":"field email must be a valid email address"`,
		},
		{
			name: "занятый username",
			body: `{"username":"alice","password":"secret123","email":"alice@example.com","fullName":"Alice Smith"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, repository.ErrUsernameExists)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"Username already exists"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			// Пароль не должен попадать в ответ ни в каком виде.
			assert.NotContains(t, w.Body.String(), "secret123")
			assert.NotContains(t, w.Body.String(), `"password"`)

			mockService.AssertExpectations(t)
		})
	}
}
