package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/finance-service/internal/models"
)

// ActiveSchedules returns the user's active recurring schedules
func (r *Repository) ActiveSchedules(ctx context.Context, userID int64) ([]models.RecurringSchedule, error) {
	query := `
		SELECT id, user_id, type, amount, frequency, start_date, end_date, indefinite
		FROM finance.recurring_schedules
		WHERE user_id = $1 AND active = true
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring schedules: %w", err)
	}
	defer rows.Close()

	var list []models.RecurringSchedule
	for rows.Next() {
		var s models.RecurringSchedule
		var end sql.NullTime
		if err := rows.Scan(&s.ID, &s.UserID, &s.Type, &s.Amount, &s.Frequency, &s.StartDate, &end, &s.Indefinite); err != nil {
			return nil, fmt.Errorf("failed to scan recurring schedule: %w", err)
		}
		if end.Valid {
			s.EndDate = &end.Time
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ScheduleExceptions returns the exceptions of all the user's schedules
func (r *Repository) ScheduleExceptions(ctx context.Context, userID int64) ([]models.ScheduleException, error) {
	query := `
		SELECT e.id, e.schedule_id, e.original_date, e.new_date, e.action
		FROM finance.schedule_exceptions e
		JOIN finance.recurring_schedules s ON s.id = e.schedule_id
		WHERE s.user_id = $1
		ORDER BY e.schedule_id, e.original_date`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule exceptions: %w", err)
	}
	defer rows.Close()

	var list []models.ScheduleException
	for rows.Next() {
		var ex models.ScheduleException
		var newDate sql.NullTime
		if err := rows.Scan(&ex.ID, &ex.ScheduleID, &ex.OriginalDate, &newDate, &ex.Action); err != nil {
			return nil, fmt.Errorf("failed to scan schedule exception: %w", err)
		}
		if newDate.Valid {
			ex.NewDate = &newDate.Time
		}
		list = append(list, ex)
	}
	return list, rows.Err()
}
