package service

import (
	"context"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
)

//go:generate mockgen -source=source.go -destination=source_mock.go -package=service

// Source defines the data reads the insights computation needs.
// It is implemented by repository.Repository.
type Source interface {
	// Core reads; a failure aborts the computation
	TotalBalance(ctx context.Context, userID int64) (float64, error)
	MonthTotals(ctx context.Context, userID int64, from, to time.Time) (models.MonthTotals, error)
	ActiveSchedules(ctx context.Context, userID int64) ([]models.RecurringSchedule, error)
	ScheduleExceptions(ctx context.Context, userID int64) ([]models.ScheduleException, error)

	// Optional reads; a failure only degrades the result
	PendingTransactions(ctx context.Context, userID int64, until time.Time) ([]models.Transaction, error)
	CategoryBudgets(ctx context.Context, userID int64, year int, month time.Month, from, to time.Time) ([]models.CategoryBudget, error)
	DebtsDueBetween(ctx context.Context, userID int64, from, to time.Time) ([]models.Debt, error)
	MonthFees(ctx context.Context, userID int64, from, to time.Time) (float64, error)
	InactiveGoals(ctx context.Context, userID int64, startedBefore time.Time) (int, error)
	Preferences(ctx context.Context, userID int64) (*models.Preferences, error)
}
