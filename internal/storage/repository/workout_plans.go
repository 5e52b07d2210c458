package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/fitness-tracker/internal/models"
)

const planSelect = `
	SELECT p.id, p.name, p.description, p.start_date, p.end_date,
	       p.difficulty_level, p.user_id,
	       u.id, u.username, u.email, u.full_name, u.password_hash, u.role, u.created_at
	FROM workout_plans p
	JOIN users u ON u.id = p.user_id`

// scanPlan читает одну строку соединения плана с создателем.
func scanPlan(row interface{ Scan(...any) error }) (*models.WorkoutPlanDetails, error) {
	var d models.WorkoutPlanDetails
	var description sql.NullString
	var endDate sql.NullTime
	var difficulty sql.NullString
	if err := row.Scan(&d.ID, &d.Name, &description, &d.StartDate, &endDate,
		&difficulty, &d.UserID,
		&d.Creator.ID, &d.Creator.Username, &d.Creator.Email, &d.Creator.FullName,
		&d.Creator.PasswordHash, &d.Creator.Role, &d.Creator.CreatedAt); err != nil {
		return nil, err
	}
	d.Description = description.String
	d.DifficultyLevel = difficulty.String
	if endDate.Valid {
		t := endDate.Time
		d.EndDate = &t
	}
	return &d, nil
}

// CreatePlan сохраняет новый план тренировок и возвращает его ID.
func (s *Storage) CreatePlan(ctx context.Context, plan models.WorkoutPlan) (int64, error) {
	const op = "repository.CreatePlan"

	var newID int64
	query := `INSERT INTO workout_plans (name, description, start_date, end_date,
			      difficulty_level, user_id)
			  VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		plan.Name, plan.Description, plan.StartDate, plan.EndDate,
		plan.DifficultyLevel, plan.UserID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPlan возвращает план тренировок вместе с данными создателя.
func (s *Storage) GetPlan(ctx context.Context, id int64) (*models.WorkoutPlanDetails, error) {
	const op = "repository.GetPlan"

	row := s.DB.QueryRowContext(ctx, planSelect+` WHERE p.id = $1`, id)
	d, err := scanPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

func (s *Storage) listPlans(ctx context.Context, op, where string, args ...any) ([]*models.WorkoutPlanDetails, error) {
	rows, err := s.DB.QueryContext(ctx, planSelect+where, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.WorkoutPlanDetails
	for rows.Next() {
		d, err := scanPlan(rows)
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

// ListPlans возвращает все планы тренировок.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.WorkoutPlanDetails, error) {
	return s.listPlans(ctx, "repository.ListPlans", ` ORDER BY p.id`)
}

// ListPlansByUser возвращает планы, созданные пользователем.
func (s *Storage) ListPlansByUser(ctx context.Context, userID int64) ([]*models.WorkoutPlanDetails, error) {
	return s.listPlans(ctx, "repository.ListPlansByUser",
		` WHERE p.user_id = $1 ORDER BY p.id`, userID)
}

// ListPlansByUserAndDifficulty возвращает планы пользователя с заданным уровнем сложности.
func (s *Storage) ListPlansByUserAndDifficulty(ctx context.Context, userID int64, difficulty string) ([]*models.WorkoutPlanDetails, error) {
	return s.listPlans(ctx, "repository.ListPlansByUserAndDifficulty",
		` WHERE p.user_id = $1 AND p.difficulty_level = $2 ORDER BY p.id`, userID, difficulty)
}

// SearchPlansByName ищет планы по подстроке названия без учета регистра.
func (s *Storage) SearchPlansByName(ctx context.Context, name string) ([]*models.WorkoutPlanDetails, error) {
	return s.listPlans(ctx, "repository.SearchPlansByName",
		` WHERE p.name ILIKE '%' || $1 || '%' ORDER BY p.id`, name)
}

// UpdatePlan обновляет поля плана по его ID. Создатель плана не меняется.
// Возвращает количество обновленных строк.
func (s *Storage) UpdatePlan(ctx context.Context, plan models.WorkoutPlan, id int64) (int64, error) {
	const op = "repository.UpdatePlan"

	query := `UPDATE workout_plans
			  SET name = $1, description = NULLIF($2, ''), start_date = $3,
			      end_date = $4, difficulty_level = NULLIF($5, '')
			  WHERE id = $6`
	res, err := s.DB.ExecContext(ctx, query,
		plan.Name, plan.Description, plan.StartDate, plan.EndDate,
		plan.DifficultyLevel, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeletePlanWithLogs удаляет план и все привязанные к нему записи журнала
// активности одной транзакцией. Возвращает ID удаленных записей журнала.
// Если план не найден, возвращает ErrNotFound.
func (s *Storage) DeletePlanWithLogs(ctx context.Context, id int64) ([]int64, error) {
	const op = "repository.DeletePlanWithLogs"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx,
		`DELETE FROM activity_logs WHERE workout_plan_id = $1 RETURNING id`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var logIDs []int64
	for rows.Next() {
		var logID int64
		if err = rows.Scan(&logID); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logIDs = append(logIDs, logID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_ = rows.Close()

	res, err := tx.ExecContext(ctx, `DELETE FROM workout_plans WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return logIDs, nil
}
