package models

import "time"

// Типы активности.
const (
	ActivityCardio      = "CARDIO"
	ActivityStrength    = "STRENGTH"
	ActivityFlexibility = "FLEXIBILITY"
	ActivitySports      = "SPORTS"
	ActivityOther       = "OTHER"
)

// DateTimeLayout формат даты и времени активности в JSON-запросах и ответах.
const DateTimeLayout = "2006-01-02T15:04:05"

// ActivityLog представляет запись журнала активности пользователя.
// WorkoutPlanID может быть nil — запись не привязана к плану тренировок.
type ActivityLog struct {
	ID              int64      // Уникальный идентификатор записи
	ActivityName    string     // Название активности
	Description     string     // Описание, может быть пустым
	DateTime        time.Time  // Момент активности, не может быть в будущем
	DurationMinutes int        // Длительность в минутах, 1..1440
	CaloriesBurned  *int       // Сожженные калории, опционально
	ActivityType    string     // Тип активности
	UserID          int64      // Владелец записи
	WorkoutPlanID   *int64     // Связанный план тренировок, опционально
}

// ActivityLogDetails запись журнала вместе с владельцем и, если запись
// привязана к плану, самим планом с его создателем.
type ActivityLogDetails struct {
	ActivityLog
	User User
	Plan *WorkoutPlanDetails
}

// ActivityLogRequest используется для приёма записи журнала из JSON-запроса.
// Дата и время приходят строкой в формате 2006-01-02T15:04:05.
// Отсутствующий workoutPlanId при обновлении снимает привязку к плану.
type ActivityLogRequest struct {
	ActivityName    string `json:"activityName" validate:"required,max=100"`
	Description     string `json:"description" validate:"omitempty,max=1000"`
	DateTime        string `json:"dateTime" validate:"required,datetime=2006-01-02T15:04:05"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,min=1,max=1440"`
	CaloriesBurned  *int   `json:"caloriesBurned" validate:"omitempty,gt=0"`
	ActivityType    string `json:"activityType" validate:"omitempty,oneof=CARDIO STRENGTH FLEXIBILITY SPORTS OTHER"`
	UserID          int64  `json:"userId" validate:"required"`
	WorkoutPlanID   *int64 `json:"workoutPlanId"`
}

// ActivityLogResponse представление записи журнала в ответах API.
type ActivityLogResponse struct {
	ID              int64                `json:"id"`
	ActivityName    string               `json:"activityName"`
	Description     string               `json:"description,omitempty"`
	DateTime        string               `json:"dateTime"`
	DurationMinutes int                  `json:"durationMinutes"`
	CaloriesBurned  *int                 `json:"caloriesBurned,omitempty"`
	ActivityType    string               `json:"activityType,omitempty"`
	User            *UserResponse        `json:"user"`
	WorkoutPlan     *WorkoutPlanResponse `json:"workoutPlan,omitempty"`
}

// ValidActivityType проверяет, что строка является известным типом активности.
func ValidActivityType(s string) bool {
	switch s {
	case ActivityCardio, ActivityStrength, ActivityFlexibility, ActivitySports, ActivityOther:
		return true
	}
	return false
}

// NewActivityLogResponse преобразует запись журнала с владельцем и планом в ответ API.
func NewActivityLogResponse(d *ActivityLogDetails) *ActivityLogResponse {
	if d == nil {
		return nil
	}
	return &ActivityLogResponse{
		ID:              d.ID,
		ActivityName:    d.ActivityName,
		Description:     d.Description,
		DateTime:        d.DateTime.Format(DateTimeLayout),
		DurationMinutes: d.DurationMinutes,
		CaloriesBurned:  d.CaloriesBurned,
		ActivityType:    d.ActivityType,
		User:            NewUserResponse(&d.User),
		WorkoutPlan:     NewWorkoutPlanResponse(d.Plan),
	}
}
