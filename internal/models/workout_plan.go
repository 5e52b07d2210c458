package models

import "time"

// Уровни сложности плана тренировок.
const (
	DifficultyBeginner     = "BEGINNER"
	DifficultyIntermediate = "INTERMEDIATE"
	DifficultyAdvanced     = "ADVANCED"
)

// DateLayout формат дат начала и окончания плана в JSON-запросах и ответах.
const DateLayout = "2006-01-02"

// WorkoutPlan представляет план тренировок, принадлежащий пользователю.
// EndDate может быть nil — план без даты окончания.
type WorkoutPlan struct {
	ID              int64      // Уникальный идентификатор плана
	Name            string     // Название плана
	Description     string     // Описание, может быть пустым
	StartDate       time.Time  // Дата начала
	EndDate         *time.Time // Дата окончания, опциональная
	DifficultyLevel string     // Уровень сложности, может быть пустым
	UserID          int64      // Пользователь-создатель плана
}

// WorkoutPlanDetails план вместе с данными создателя, как их отдает хранилище.
type WorkoutPlanDetails struct {
	WorkoutPlan
	Creator User
}

// WorkoutPlanRequest используется для приёма данных плана из JSON-запроса.
// Даты приходят строками в формате 2006-01-02 и парсятся в сервисе.
type WorkoutPlanRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Description     string `json:"description" validate:"omitempty,max=1000"`
	StartDate       string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate         string `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	DifficultyLevel string `json:"difficultyLevel" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	UserID          int64  `json:"userId" validate:"required"`
}

// WorkoutPlanResponse представление плана тренировок в ответах API.
type WorkoutPlanResponse struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate,omitempty"`
	DifficultyLevel string        `json:"difficultyLevel,omitempty"`
	Creator         *UserResponse `json:"creator"`
}

// ValidDifficulty проверяет, что строка является известным уровнем сложности.
func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// NewWorkoutPlanResponse преобразует план с данными создателя в ответ API.
func NewWorkoutPlanResponse(d *WorkoutPlanDetails) *WorkoutPlanResponse {
	if d == nil {
		return nil
	}
	resp := &WorkoutPlanResponse{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		StartDate:       d.StartDate.Format(DateLayout),
		DifficultyLevel: d.DifficultyLevel,
		Creator:         NewUserResponse(&d.Creator),
	}
	if d.EndDate != nil {
		resp.EndDate = d.EndDate.Format(DateLayout)
	}
	return resp
}
