package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, passwordHash, role string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, email, full_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		username, email, "Test User", passwordHash, role).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateWorkoutPlan создает тестовый план тренировок и возвращает его ID
func (f *TestDataFactory) CreateWorkoutPlan(t *testing.T, name string, userID int64, startDate time.Time, difficulty string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO workout_plans (name, start_date, difficulty_level, user_id)
		VALUES ($1, $2, NULLIF($3, ''), $4) RETURNING id`,
		name, startDate, difficulty, userID).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateActivityLog создает тестовую запись журнала и возвращает её ID
func (f *TestDataFactory) CreateActivityLog(t *testing.T, name string, userID int64, planID *int64, dateTime time.Time, minutes int) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO activity_logs
		(activity_name, date_time, duration_minutes, user_id, workout_plan_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		name, dateTime, minutes, userID, planID).Scan(&id)
	require.NoError(t, err)
	return id
}

// UniqueUsername возвращает уникальное имя пользователя для теста
func UniqueUsername() string {
	return "user-" + uuid.New().String()[:8]
}

// UniqueEmail возвращает уникальный email для теста
func UniqueEmail() string {
	return uuid.New().String()[:8] + "@example.com"
}
