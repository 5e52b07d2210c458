// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, планов тренировок и журналов активности. Предоставляет
// методы создания, чтения, обновления, удаления и выборки записей.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки хранилища. Уникальные ограничения базы переводятся в
// ErrUsernameExists/ErrEmailExists, отсутствие записи — в ErrNotFound.
var (
	ErrNotFound       = errors.New("record not found")
	ErrUsernameExists = errors.New("username is already taken")
	ErrEmailExists    = errors.New("email is already in use")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, планами и журналами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "repository.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// mapUniqueViolation переводит нарушение уникального ограничения базы
// в доменную ошибку по имени ограничения. Гонка проверка-запись при
// конкурентной регистрации закрывается на уровне базы.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrUsernameExists
		case "users_email_key":
			return ErrEmailExists
		}
	}
	return err
}
