// Package services содержит бизнес-логику для управления пользователями:
// регистрацию, чтение, обновление с частичной сменой пароля и удаление.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/fitness-tracker/internal/lib/password"
	"github.com/magabrotheeeer/fitness-tracker/internal/models"
	"github.com/magabrotheeeer/fitness-tracker/internal/storage/repository"
)

// ErrPasswordRequired возвращается при попытке создать пользователя без пароля.
var ErrPasswordRequired = errors.New("password is required")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// GetUserByUsername возвращает пользователя по username.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// ListUsers возвращает всех пользователей.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// UserExistsByUsername проверяет занятость username.
	UserExistsByUsername(ctx context.Context, username string) (bool, error)
	// UserExistsByEmail проверяет занятость email.
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	// UpdateUser обновляет запись пользователя, возвращает число строк.
	UpdateUser(ctx context.Context, user models.User) (int64, error)
	// DeleteUser удаляет пользователя, возвращает число строк.
	DeleteUser(ctx context.Context, id int64) (int64, error)
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Create регистрирует нового пользователя. Пароль хэшируется до записи,
// занятость username и email проверяется заранее, а гонку конкурентной
// регистрации добивает уникальное ограничение в базе.
func (s *UserService) Create(ctx context.Context, req models.UserRequest) (*models.UserResponse, error) {
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}

	taken, err := s.repo.UserExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrUsernameExists
	}
	taken, err = s.repo.UserExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, repository.ErrEmailExists
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleRegular // дефолтная роль при регистрации
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hashed,
		Role:         role,
	}

	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new user", slog.Int64("id", id), slog.String("username", req.Username))

	created, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewUserResponse(created), nil
}

// Read возвращает пользователя по ID.
func (s *UserService) Read(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewUserResponse(user), nil
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, models.NewUserResponse(u))
	}
	return result, nil
}

// Update обновляет пользователя. Занятость username и email перепроверяется
// только когда поле действительно меняется. Пустой пароль в запросе оставляет
// прежний хэш, пустая роль — прежнюю роль.
func (s *UserService) Update(ctx context.Context, id int64, req models.UserRequest) (*models.UserResponse, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Username != req.Username {
		taken, err := s.repo.UserExistsByUsername(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, repository.ErrUsernameExists
		}
	}
	if user.Email != req.Email {
		taken, err := s.repo.UserExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, repository.ErrEmailExists
		}
	}

	user.Username = req.Username
	user.Email = req.Email
	user.FullName = req.FullName
	if req.Password != "" {
		hashed, err := password.GetHash(req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	count, err := s.repo.UpdateUser(ctx, *user)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, repository.ErrNotFound
	}
	s.log.Info("updated user", slog.Int64("id", id))
	return models.NewUserResponse(user), nil
}

// Delete удаляет пользователя по ID. Планы и журналы пользователя
// удаляются каскадно на уровне базы.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	const op = "services.user.Delete"
	count, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	s.log.Info("deleted user", slog.Int64("id", id))
	return nil
}
