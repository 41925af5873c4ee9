package service

import (
	"time"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/recurrence"
	"github.com/shopspring/decimal"
)

// monthKPIs derives the month-to-date indicators as of now.
// The run rate extrapolates the daily average expense to the full month.
func monthKPIs(t models.MonthTotals, now time.Time) models.KPISet {
	income := decimal.NewFromFloat(t.Income)
	expense := decimal.NewFromFloat(t.Expense)
	net := income.Sub(expense)

	elapsed := now.Day()
	inMonth := recurrence.DaysIn(now.Year(), now.Month())
	daily := expense.Div(decimal.NewFromInt(int64(elapsed)))

	kpis := models.KPISet{
		Income:     income.Round(2).InexactFloat64(),
		Expense:    expense.Round(2).InexactFloat64(),
		NetSavings: net.Round(2).InexactFloat64(),
		RunRate: models.RunRate{
			DailyAvgExpense:  daily.Round(2).InexactFloat64(),
			ProjectedExpense: daily.Mul(decimal.NewFromInt(int64(inMonth))).Round(2).InexactFloat64(),
			DaysElapsed:      elapsed,
			DaysInMonth:      inMonth,
		},
	}
	if income.IsPositive() {
		rate := net.Div(income).Round(4).InexactFloat64()
		kpis.SavingsRate = &rate
	}
	return kpis
}

// monthlyRecurringExpense sums the expense occurrences of the calendar month of now
func monthlyRecurringExpense(schedules []models.RecurringSchedule, exceptions []models.ScheduleException, now time.Time) float64 {
	total := decimal.Zero
	for _, o := range recurrence.GenerateAll(schedules, exceptions, recurrence.MonthWindow(now)) {
		if o.Type == models.FlowExpense {
			total = total.Add(decimal.NewFromFloat(o.Amount))
		}
	}
	return total.Round(2).InexactFloat64()
}
