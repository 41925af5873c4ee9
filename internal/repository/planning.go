package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
)

// CategoryBudgets returns every category of the user with its budget for the
// given month (zero when none is set) and the expense applied in [from, to]
func (r *Repository) CategoryBudgets(ctx context.Context, userID int64, year int, month time.Month, from, to time.Time) ([]models.CategoryBudget, error) {
	query := `
		SELECT c.id, c.name, COALESCE(b.amount, 0),
		       COALESCE((
		           SELECT SUM(t.amount) FROM finance.transactions t
		           WHERE t.category_id = c.id AND t.applied = true AND t.type = 'expense'
		             AND t.date >= $4 AND t.date <= $5
		       ), 0)
		FROM finance.categories c
		LEFT JOIN finance.category_budgets b
		       ON b.category_id = c.id AND b.year = $2 AND b.month = $3
		WHERE c.user_id = $1
		ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, query, userID, year, int(month), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list category budgets: %w", err)
	}
	defer rows.Close()

	var list []models.CategoryBudget
	for rows.Next() {
		var b models.CategoryBudget
		if err := rows.Scan(&b.CategoryID, &b.Name, &b.Budget, &b.Spent); err != nil {
			return nil, fmt.Errorf("failed to scan category budget: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

// DebtsDueBetween returns unpaid debts with a due date in (from, to]
func (r *Repository) DebtsDueBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Debt, error) {
	query := `
		SELECT id, user_id, name, total, paid, due_date
		FROM finance.debts
		WHERE user_id = $1 AND paid < total AND due_date > $2 AND due_date <= $3
		ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var list []models.Debt
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Total, &d.Paid, &d.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// InactiveGoals counts unmet goals with nothing saved that started on or before startedBefore
func (r *Repository) InactiveGoals(ctx context.Context, userID int64, startedBefore time.Time) (int, error) {
	var n int
	query := `
		SELECT COUNT(*)
		FROM finance.goals
		WHERE user_id = $1 AND saved < target AND saved = 0 AND start_date <= $2`
	if err := r.db.QueryRowContext(ctx, query, userID, startedBefore).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count inactive goals: %w", err)
	}
	return n, nil
}

// Preferences returns the user's stored alert thresholds, or nil when none are stored
func (r *Repository) Preferences(ctx context.Context, userID int64) (*models.Preferences, error) {
	p := &models.Preferences{}
	query := `
		SELECT warn_pct, danger_pct
		FROM finance.user_preferences
		WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.WarnPct, &p.DangerPct)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return p, nil
}
