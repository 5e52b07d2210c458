package middlewarectx_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fitness-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"

	"io"
	"log/slog"
)

// Mock for AuthService
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *AuthServiceMock) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	claims, _ := args.Get(0).(*jwt.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestAuthMiddleware(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*AuthServiceMock)
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "valid basic credentials",
			authHeader: basicHeader("alice", "secret123"),
			setupMock: func(m *AuthServiceMock) {
				m.On("Authenticate", mock.Anything, "alice", "secret123").
					Return(&models.User{ID: 1, Username: "alice", Role: models.RoleRegular}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:       "wrong basic credentials",
			authHeader: basicHeader("alice", "wrong"),
			setupMock: func(m *AuthServiceMock) {
				m.On("Authenticate", mock.Anything, "alice", "wrong").
					Return(nil, errors.New("invalid credentials"))
			},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "malformed basic header",
			authHeader:     "Basic not-base64!!!",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "valid bearer token",
			authHeader: "Bearer validtoken",
			setupMock: func(m *AuthServiceMock) {
				m.On("ParseToken", "validtoken").Return(&jwt.CustomClaims{
					Username: "alice",
					Role:     models.RoleRegular,
					UserID:   1,
				}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:       "expired bearer token",
			authHeader: "Bearer expired",
			setupMock: func(m *AuthServiceMock) {
				m.On("ParseToken", "expired").Return(nil, errors.New("token is expired"))
			},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				principal, ok := middlewarectx.PrincipalFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "alice", principal.Username)
				assert.Equal(t, int64(1), principal.UserID)
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.AuthMiddleware(authMock, logger)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/users/1", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			mw.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			authMock.AssertExpectations(t)
		})
	}
}
