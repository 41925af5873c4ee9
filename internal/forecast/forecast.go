// Package forecast projects cashflow over forward-looking horizons.
package forecast

import (
	"context"
	"time"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/Dan9191/finance-service/internal/recurrence"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DebtLookup returns debts due in (from, to]
type DebtLookup func(ctx context.Context, from, to time.Time) ([]models.Debt, error)

// Input is the snapshot a projection is computed from
type Input struct {
	Today           time.Time
	StartingBalance float64
	Schedules       []models.RecurringSchedule
	Exceptions      []models.ScheduleException
	// Pending one-off transactions are only counted when IncludePending is set.
	Pending        []models.Transaction
	IncludePending bool
	Debts          DebtLookup
}

// Engine computes forecast horizons
type Engine struct {
	log *logrus.Logger
}

// NewEngine initializes a new forecast engine
func NewEngine(log *logrus.Logger) *Engine {
	return &Engine{log: log}
}

// Project returns one horizon per entry of horizons, in the same order.
// Each horizon is computed on its own; a failed debt lookup only drops the
// debt pressure of that horizon.
func (e *Engine) Project(ctx context.Context, in Input, horizons []int) []models.ForecastHorizon {
	today := recurrence.Date(in.Today)
	exceptions := recurrence.GroupExceptions(in.Exceptions)
	start := decimal.NewFromFloat(in.StartingBalance)

	out := make([]models.ForecastHorizon, 0, len(horizons))
	for _, days := range horizons {
		w := recurrence.NewWindow(today, days)
		inflow, outflow := decimal.Zero, decimal.Zero

		for _, s := range in.Schedules {
			for _, o := range recurrence.Generate(s, exceptions[s.ID], w) {
				inflow, outflow = addFlow(inflow, outflow, o.Type, o.Amount)
			}
		}

		if in.IncludePending {
			for _, tx := range in.Pending {
				if recurrence.Date(tx.Date).After(w.End) {
					continue
				}
				inflow, outflow = addFlow(inflow, outflow, tx.Type, tx.Amount)
			}
		}

		outflow = outflow.Add(e.debtPressure(ctx, in.Debts, today, w.End))

		net := inflow.Sub(outflow)
		out = append(out, models.ForecastHorizon{
			Days:             days,
			ProjectedInflow:  inflow.Round(2).InexactFloat64(),
			ProjectedOutflow: outflow.Round(2).InexactFloat64(),
			Net:              net.Round(2).InexactFloat64(),
			StartingBalance:  start.Round(2).InexactFloat64(),
			ProjectedBalance: start.Add(net).Round(2).InexactFloat64(),
		})
	}
	return out
}

// debtPressure sums the unpaid remainder of debts due after today and up to end
func (e *Engine) debtPressure(ctx context.Context, lookup DebtLookup, today, end time.Time) decimal.Decimal {
	if lookup == nil {
		return decimal.Zero
	}
	debts, err := lookup(ctx, today, end)
	if err != nil {
		e.log.WithFields(logrus.Fields{"from": today.Format("2006-01-02"), "to": end.Format("2006-01-02")}).
			Warnf("Debt lookup failed, horizon computed without debt pressure: %v", err)
		return decimal.Zero
	}
	total := decimal.Zero
	for _, d := range debts {
		due := recurrence.Date(d.DueDate)
		if !due.After(today) || due.After(end) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(d.Remaining()))
	}
	return total
}

func addFlow(inflow, outflow decimal.Decimal, t models.FlowType, amount float64) (decimal.Decimal, decimal.Decimal) {
	a := decimal.NewFromFloat(amount)
	if t.IsInflow() {
		return inflow.Add(a), outflow
	}
	return inflow, outflow.Add(a)
}
