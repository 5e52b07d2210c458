// Package services содержит логику аутентификации: проверку учетных данных
// по Basic-заголовку, выдачу и валидацию JWT токенов.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/fitness-tracker/internal/lib/password"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре username/password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для поиска пользователей.
type UserRepository interface {
	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService отвечает за проверку учетных данных и работу с JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Authenticate проверяет пару username/password по хранилищу.
// Возвращает пользователя при совпадении пароля с хэшем.
func (s *AuthService) Authenticate(ctx context.Context, username, rawPassword string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login проверяет учетные данные и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.User, error) {
	user, err := s.Authenticate(ctx, username, rawPassword)
	if err != nil {
		return "", nil, err
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ParseToken проверяет JWT и возвращает его claims.
func (s *AuthService) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(tokenStr)
}
