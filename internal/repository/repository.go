package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// TotalBalance sums the balances of all accounts of the user
func (r *Repository) TotalBalance(ctx context.Context, userID int64) (float64, error) {
	var total float64
	query := `
		SELECT COALESCE(SUM(balance), 0)
		FROM finance.accounts
		WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum account balances: %w", err)
	}
	return total, nil
}

// MonthTotals aggregates applied transactions dated in [from, to] by flow type
func (r *Repository) MonthTotals(ctx context.Context, userID int64, from, to time.Time) (models.MonthTotals, error) {
	query := `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM finance.transactions
		WHERE user_id = $1 AND applied = true AND date >= $2 AND date <= $3
		GROUP BY type`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return models.MonthTotals{}, fmt.Errorf("failed to aggregate month totals: %w", err)
	}
	defer rows.Close()

	var totals models.MonthTotals
	for rows.Next() {
		var flow models.FlowType
		var sum float64
		if err := rows.Scan(&flow, &sum); err != nil {
			return models.MonthTotals{}, fmt.Errorf("failed to scan month totals: %w", err)
		}
		switch flow {
		case models.FlowIncome:
			totals.Income = sum
		case models.FlowExpense:
			totals.Expense = sum
		case models.FlowSaving:
			totals.Saving = sum
		}
	}
	if err := rows.Err(); err != nil {
		return models.MonthTotals{}, fmt.Errorf("failed to read month totals: %w", err)
	}
	return totals, nil
}

// PendingTransactions returns unapplied transactions dated on or before until
func (r *Repository) PendingTransactions(ctx context.Context, userID int64, until time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, account_id, category_id, amount, type, description, date
		FROM finance.transactions
		WHERE user_id = $1 AND applied = false AND date <= $2
		ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, userID, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	defer rows.Close()

	var list []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		var category sql.NullInt64
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &category, &tx.Amount, &tx.Type, &tx.Description, &tx.Date); err != nil {
			return nil, fmt.Errorf("failed to scan pending transaction: %w", err)
		}
		if category.Valid {
			tx.CategoryID = &category.Int64
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

// MonthFees sums applied expenses in fee categories dated in [from, to]
func (r *Repository) MonthFees(ctx context.Context, userID int64, from, to time.Time) (float64, error) {
	var total float64
	query := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM finance.transactions t
		JOIN finance.categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.applied = true AND t.type = 'expense'
		  AND c.is_fee = true AND t.date >= $2 AND t.date <= $3`
	if err := r.db.QueryRowContext(ctx, query, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum fees: %w", err)
	}
	return total, nil
}
