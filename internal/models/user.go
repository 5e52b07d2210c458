// Package models содержит доменные структуры приложения: пользователей,
// планы тренировок и журналы активности, а также вспомогательные типы
// для приёма данных из JSON-запросов и формирования ответов API.
package models

import "time"

// Роли пользователей. Хранятся в базе как строки.
const (
	RoleRegular = "REGULAR"
	RoleAdmin   = "ADMIN"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64     // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	Email        string    // Электронная почта (уникальная)
	FullName     string    // Полное имя
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, REGULAR или ADMIN
	CreatedAt    time.Time // Дата создания записи, неизменяемая
}

// IsAdmin сообщает, обладает ли пользователь ролью администратора.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserRequest используется для приёма данных пользователя из JSON-запроса.
// При обновлении пустой пароль означает "оставить прежний",
// пустая роль — "не менять".
type UserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=REGULAR ADMIN"`
}

// UserResponse представление пользователя в ответах API.
// Пароль и его хэш в ответ не попадают никогда.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse преобразует доменную модель пользователя в ответ API.
func NewUserResponse(u *User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
