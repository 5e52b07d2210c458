package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "repository.CreateUser"

	var newID int64
	query := `INSERT INTO users (username, email, full_name, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FullName, user.PasswordHash,
		user.Role).Scan(&newID); err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "repository.GetUser"

	query := `SELECT id, username, email, full_name, password_hash, role, created_at
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName,
		&u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "repository.GetUserByUsername"

	query := `SELECT id, username, email, full_name, password_hash, role, created_at
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName,
		&u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "repository.ListUsers"

	query := `SELECT id, username, email, full_name, password_hash, role, created_at
			  FROM users
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Username, &u.Email, &u.FullName,
			&u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UserExistsByUsername проверяет наличие пользователя с таким username.
func (s *Storage) UserExistsByUsername(ctx context.Context, username string) (bool, error) {
	const op = "repository.UserExistsByUsername"

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`
	if err := s.DB.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UserExistsByEmail проверяет наличие пользователя с таким email.
func (s *Storage) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	const op = "repository.UserExistsByEmail"

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateUser обновляет запись пользователя целиком по его ID.
// Возвращает количество обновленных строк.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "repository.UpdateUser"

	query := `UPDATE users
			  SET username = $1, email = $2, full_name = $3,
			      password_hash = $4, role = $5
			  WHERE id = $6`
	res, err := s.DB.ExecContext(ctx, query,
		user.Username, user.Email, user.FullName, user.PasswordHash,
		user.Role, user.ID)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != err {
			return 0, mapped
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeleteUser удаляет пользователя по ID. Планы и журналы пользователя
// удаляются каскадно на уровне базы. Возвращает количество удаленных строк.
func (s *Storage) DeleteUser(ctx context.Context, id int64) (int64, error) {
	const op = "repository.DeleteUser"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
