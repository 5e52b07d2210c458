package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

const logSelect = `
	SELECT l.id, l.activity_name, l.description, l.date_time, l.duration_minutes,
	       l.calories_burned, l.activity_type, l.user_id, l.workout_plan_id,
	       u.id, u.username, u.email, u.full_name, u.password_hash, u.role, u.created_at,
	       p.id, p.name, p.description, p.start_date, p.end_date, p.difficulty_level, p.user_id,
	       c.id, c.username, c.email, c.full_name, c.password_hash, c.role, c.created_at
	FROM activity_logs l
	JOIN users u ON u.id = l.user_id
	LEFT JOIN workout_plans p ON p.id = l.workout_plan_id
	LEFT JOIN users c ON c.id = p.user_id`

// scanLog читает одну строку соединения записи журнала с владельцем
// и, если запись привязана к плану, с планом и его создателем.
func scanLog(row interface{ Scan(...any) error }) (*models.ActivityLogDetails, error) {
	var d models.ActivityLogDetails
	var description, activityType sql.NullString
	var calories sql.NullInt64
	var planID sql.NullInt64

	var pID, pUserID, cID sql.NullInt64
	var pName, pDescription, pDifficulty sql.NullString
	var pStartDate, pEndDate sql.NullTime
	var cUsername, cEmail, cFullName, cPasswordHash, cRole sql.NullString
	var cCreatedAt sql.NullTime

	if err := row.Scan(&d.ID, &d.ActivityName, &description, &d.DateTime,
		&d.DurationMinutes, &calories, &activityType, &d.UserID, &planID,
		&d.User.ID, &d.User.Username, &d.User.Email, &d.User.FullName,
		&d.User.PasswordHash, &d.User.Role, &d.User.CreatedAt,
		&pID, &pName, &pDescription, &pStartDate, &pEndDate, &pDifficulty, &pUserID,
		&cID, &cUsername, &cEmail, &cFullName, &cPasswordHash, &cRole, &cCreatedAt); err != nil {
		return nil, err
	}
	d.Description = description.String
	d.ActivityType = activityType.String
	if calories.Valid {
		v := int(calories.Int64)
		d.CaloriesBurned = &v
	}
	if planID.Valid {
		v := planID.Int64
		d.WorkoutPlanID = &v
	}
	if pID.Valid {
		plan := &models.WorkoutPlanDetails{}
		plan.ID = pID.Int64
		plan.Name = pName.String
		plan.Description = pDescription.String
		plan.StartDate = pStartDate.Time
		if pEndDate.Valid {
			t := pEndDate.Time
			plan.EndDate = &t
		}
		plan.DifficultyLevel = pDifficulty.String
		plan.UserID = pUserID.Int64
		plan.Creator = models.User{
			ID:           cID.Int64,
			Username:     cUsername.String,
			Email:        cEmail.String,
			FullName:     cFullName.String,
			PasswordHash: cPasswordHash.String,
			Role:         cRole.String,
			CreatedAt:    cCreatedAt.Time,
		}
		d.Plan = plan
	}
	return &d, nil
}

// CreateLog сохраняет новую запись журнала активности и возвращает её ID.
func (s *Storage) CreateLog(ctx context.Context, log models.ActivityLog) (int64, error) {
	const op = "repository.CreateLog"

	var newID int64
	query := `INSERT INTO activity_logs (activity_name, description, date_time,
			      duration_minutes, calories_burned, activity_type, user_id, workout_plan_id)
			  VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, ''), $7, $8)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		log.ActivityName, log.Description, log.DateTime, log.DurationMinutes,
		log.CaloriesBurned, log.ActivityType, log.UserID, log.WorkoutPlanID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetLog возвращает запись журнала вместе с владельцем и привязанным планом.
func (s *Storage) GetLog(ctx context.Context, id int64) (*models.ActivityLogDetails, error) {
	const op = "repository.GetLog"

	row := s.DB.QueryRowContext(ctx, logSelect+` WHERE l.id = $1`, id)
	d, err := scanLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

func (s *Storage) listLogs(ctx context.Context, op, where string, args ...any) ([]*models.ActivityLogDetails, error) {
	rows, err := s.DB.QueryContext(ctx, logSelect+where, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.ActivityLogDetails
	for rows.Next() {
		d, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListLogs возвращает все записи журнала активности.
func (s *Storage) ListLogs(ctx context.Context) ([]*models.ActivityLogDetails, error) {
	return s.listLogs(ctx, "repository.ListLogs", ` ORDER BY l.id`)
}

// ListLogsByUser возвращает записи журнала пользователя.
func (s *Storage) ListLogsByUser(ctx context.Context, userID int64) ([]*models.ActivityLogDetails, error) {
	return s.listLogs(ctx, "repository.ListLogsByUser",
		` WHERE l.user_id = $1 ORDER BY l.id`, userID)
}

// ListLogsByUserAndRange возвращает записи пользователя за интервал времени.
func (s *Storage) ListLogsByUserAndRange(ctx context.Context, userID int64, from, to time.Time) ([]*models.ActivityLogDetails, error) {
	return s.listLogs(ctx, "repository.ListLogsByUserAndRange",
		` WHERE l.user_id = $1 AND l.date_time BETWEEN $2 AND $3 ORDER BY l.id`,
		userID, from, to)
}

// ListLogsByUserAndType возвращает записи пользователя с заданным типом активности.
func (s *Storage) ListLogsByUserAndType(ctx context.Context, userID int64, activityType string) ([]*models.ActivityLogDetails, error) {
	return s.listLogs(ctx, "repository.ListLogsByUserAndType",
		` WHERE l.user_id = $1 AND l.activity_type = $2 ORDER BY l.id`, userID, activityType)
}

// UpdateLog обновляет поля записи журнала по её ID. Владелец записи не меняется,
// workout_plan_id перезаписывается значением из log (nil снимает привязку).
// Возвращает количество обновленных строк.
func (s *Storage) UpdateLog(ctx context.Context, log models.ActivityLog, id int64) (int64, error) {
	const op = "repository.UpdateLog"

	query := `UPDATE activity_logs
			  SET activity_name = $1, description = NULLIF($2, ''), date_time = $3,
			      duration_minutes = $4, calories_burned = $5,
			      activity_type = NULLIF($6, ''), workout_plan_id = $7
			  WHERE id = $8`
	res, err := s.DB.ExecContext(ctx, query,
		log.ActivityName, log.Description, log.DateTime, log.DurationMinutes,
		log.CaloriesBurned, log.ActivityType, log.WorkoutPlanID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeleteLog удаляет запись журнала по ID. Возвращает количество удаленных строк.
func (s *Storage) DeleteLog(ctx context.Context, id int64) (int64, error) {
	const op = "repository.DeleteLog"

	res, err := s.DB.ExecContext(ctx, `DELETE FROM activity_logs WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
