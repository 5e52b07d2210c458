// Package authz реализует модель владения и проверки доступа.
//
// Principal описывает аутентифицированного пользователя запроса.
// Resolver отвечает на вопрос "владеет ли текущий пользователь ресурсом":
// пользователем, планом тренировок или записью журнала. Сверка идет по
// username владельца записи. Предикаты не меняют состояние и никогда не
// возвращают ошибку: любая неудача поиска трактуется как "не владелец".
package authz

import (
	"context"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

// Principal аутентифицированный пользователь текущего запроса.
type Principal struct {
	UserID   int64
	Username string
	Role     string
}

// IsAdmin сообщает, обладает ли принципал ролью администратора.
func (p Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

// UserGetter ищет пользователя по ID.
type UserGetter interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// PlanGetter ищет план тренировок по ID.
type PlanGetter interface {
	GetPlan(ctx context.Context, id int64) (*models.WorkoutPlanDetails, error)
}

// LogGetter ищет запись журнала активности по ID.
type LogGetter interface {
	GetLog(ctx context.Context, id int64) (*models.ActivityLogDetails, error)
}

// Resolver определяет владение ресурсами через поиск в хранилище.
type Resolver struct {
	users UserGetter
	plans PlanGetter
	logs  LogGetter
}

// NewResolver создает новый Resolver поверх хранилища.
func NewResolver(users UserGetter, plans PlanGetter, logs LogGetter) *Resolver {
	return &Resolver{
		users: users,
		plans: plans,
		logs:  logs,
	}
}

// IsCurrentUser возвращает true, если username пользователя с данным ID
// совпадает с username принципала. Ошибка поиска дает false.
func (r *Resolver) IsCurrentUser(ctx context.Context, p Principal, userID int64) bool {
	if p.Username == "" {
		return false
	}
	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return false
	}
	return user.Username == p.Username
}

// IsPlanOwner возвращает true, если создатель плана — принципал.
// Ошибка поиска дает false.
func (r *Resolver) IsPlanOwner(ctx context.Context, p Principal, planID int64) bool {
	if p.Username == "" {
		return false
	}
	plan, err := r.plans.GetPlan(ctx, planID)
	if err != nil {
		return false
	}
	return plan.Creator.Username == p.Username
}

// IsLogOwner возвращает true, если владелец записи журнала — принципал.
// Владельцем считается пользователь из поля user записи, не создатель плана.
// Ошибка поиска дает false.
func (r *Resolver) IsLogOwner(ctx context.Context, p Principal, logID int64) bool {
	if p.Username == "" {
		return false
	}
	log, err := r.logs.GetLog(ctx, logID)
	if err != nil {
		return false
	}
	return log.User.Username == p.Username
}

// CanAccessUser проверяет доступ к пользователю: админ или сам пользователь.
func (r *Resolver) CanAccessUser(ctx context.Context, p Principal, userID int64) bool {
	return p.IsAdmin() || r.IsCurrentUser(ctx, p, userID)
}

// CanAccessPlan проверяет доступ к плану: админ или создатель плана.
func (r *Resolver) CanAccessPlan(ctx context.Context, p Principal, planID int64) bool {
	return p.IsAdmin() || r.IsPlanOwner(ctx, p, planID)
}

// CanAccessLog проверяет доступ к записи журнала: админ или её владелец.
func (r *Resolver) CanAccessLog(ctx context.Context, p Principal, logID int64) bool {
	return p.IsAdmin() || r.IsLogOwner(ctx, p, logID)
}

// CanActForUser проверяет право выполнить операцию от имени пользователя
// с данным ID: админ или сам пользователь. Используется для запросов,
// которые несут userId в теле — создания и обновления записей журнала,
// где сверять ещё не с чем или сверка идет с намерением клиента.
func (r *Resolver) CanActForUser(ctx context.Context, p Principal, userID int64) bool {
	return p.IsAdmin() || r.IsCurrentUser(ctx, p, userID)
}
