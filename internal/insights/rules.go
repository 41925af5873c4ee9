package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/shopspring/decimal"
)

// Rule ids double as dismissal keys and must stay stable.
const (
	IDRunRate          = "run-rate-risk"
	IDBudgetOverrun    = "budget-overrun"
	IDSavingsRate      = "savings-rate"
	IDRecurringExpense = "recurring-pressure"
	IDInactiveGoals    = "inactive-goals"
	IDElevatedFees     = "elevated-fees"
	IDNoBudgets        = "no-budgets"
	IDForecast30       = "forecast-negative-30"
	IDForecast60       = "forecast-negative-60"
)

const maxBudgetCategories = 3

// DefaultRules returns the stock rule set in evaluation order
func DefaultRules() []Rule {
	return []Rule{
		RuleFunc{Name: IDRunRate, Fn: runRateRule},
		RuleFunc{Name: IDBudgetOverrun, Heavy: true, Fn: budgetOverrunRule},
		RuleFunc{Name: IDSavingsRate, Fn: savingsRateRule},
		RuleFunc{Name: IDRecurringExpense, Heavy: true, Fn: recurringPressureRule},
		RuleFunc{Name: IDInactiveGoals, Fn: inactiveGoalsRule},
		RuleFunc{Name: IDElevatedFees, Heavy: true, Fn: elevatedFeesRule},
		RuleFunc{Name: IDNoBudgets, Fn: noBudgetsRule},
		RuleFunc{Name: IDForecast30, Fn: forecast30Rule},
		RuleFunc{Name: IDForecast60, Fn: forecast60Rule},
	}
}

func runRateRule(in Input) (*models.Insight, error) {
	income := in.KPIs.Income
	if income <= 0 {
		return nil, nil
	}
	projected := in.KPIs.RunRate.ProjectedExpense
	ratio := projected / income

	var severity models.Severity
	switch {
	case ratio >= in.Thresholds.RunRateDanger:
		severity = models.SeverityDanger
	case ratio >= in.Thresholds.RunRateWarn:
		severity = models.SeverityWarning
	default:
		return nil, nil
	}

	return &models.Insight{
		ID:       IDRunRate,
		Severity: severity,
		Title:    "Spending pace above income",
		Body: fmt.Sprintf("At %s per day you are on track to spend %s this month, %.0f%% of your income of %s.",
			money(in.KPIs.RunRate.DailyAvgExpense), money(projected), ratio*100, money(income)),
		CTA: &models.CTA{Label: "Review expenses", Href: "/transactions?type=expense"},
	}, nil
}

type budgetUsage struct {
	name string
	pct  float64
}

func budgetOverrunRule(in Input) (*models.Insight, error) {
	if err := in.Detail.available(DetailBudgets); err != nil {
		return nil, err
	}

	var danger, warn []budgetUsage
	for _, b := range in.Detail.Budgets {
		if b.Budget <= 0 {
			continue
		}
		pct := b.Spent / b.Budget * 100
		switch {
		case pct >= in.Thresholds.BudgetDangerPct:
			danger = append(danger, budgetUsage{name: b.Name, pct: pct})
		case pct >= in.Thresholds.BudgetWarnPct:
			warn = append(warn, budgetUsage{name: b.Name, pct: pct})
		}
	}

	if len(danger) > 0 {
		return &models.Insight{
			ID:       IDBudgetOverrun,
			Severity: models.SeverityDanger,
			Title:    "Budgets exceeded",
			Body:     "Over budget: " + topUsage(danger) + ".",
			CTA:      &models.CTA{Label: "Adjust budgets", Href: "/budgets"},
		}, nil
	}
	if len(warn) > 0 {
		return &models.Insight{
			ID:       IDBudgetOverrun,
			Severity: models.SeverityWarning,
			Title:    "Budgets close to the limit",
			Body:     "Close to the limit: " + topUsage(warn) + ".",
			CTA:      &models.CTA{Label: "Review budgets", Href: "/budgets"},
		}, nil
	}
	return nil, nil
}

// topUsage lists the highest usages, most used first
func topUsage(items []budgetUsage) string {
	sort.SliceStable(items, func(i, j int) bool { return items[i].pct > items[j].pct })
	if len(items) > maxBudgetCategories {
		items = items[:maxBudgetCategories]
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%s (%.0f%%)", it.name, it.pct))
	}
	return strings.Join(parts, ", ")
}

func savingsRateRule(in Input) (*models.Insight, error) {
	rate := in.KPIs.SavingsRate
	if rate == nil {
		return nil, nil
	}
	switch {
	case *rate < 0:
		return &models.Insight{
			ID:       IDSavingsRate,
			Severity: models.SeverityDanger,
			Title:    "Spending more than you earn",
			Body:     fmt.Sprintf("Expenses exceed income by %s this month.", money(-in.KPIs.NetSavings)),
			CTA:      &models.CTA{Label: "Review expenses", Href: "/transactions?type=expense"},
		}, nil
	case *rate < in.Thresholds.SavingsRateWarn:
		return &models.Insight{
			ID:       IDSavingsRate,
			Severity: models.SeverityWarning,
			Title:    "Low savings rate",
			Body:     fmt.Sprintf("You are saving %.1f%% of your income this month.", *rate*100),
			CTA:      &models.CTA{Label: "Set a goal", Href: "/goals"},
		}, nil
	}
	return nil, nil
}

func recurringPressureRule(in Input) (*models.Insight, error) {
	if err := in.Detail.available(DetailRecurring); err != nil {
		return nil, err
	}
	if in.KPIs.Income <= 0 {
		return nil, nil
	}
	ratio := in.Detail.MonthlyRecurringExpense / in.KPIs.Income

	var severity models.Severity
	switch {
	case ratio >= in.Thresholds.RecurringDanger:
		severity = models.SeverityDanger
	case ratio >= in.Thresholds.RecurringWarn:
		severity = models.SeverityWarning
	default:
		return nil, nil
	}
	return &models.Insight{
		ID:       IDRecurringExpense,
		Severity: severity,
		Title:    "High fixed expenses",
		Body: fmt.Sprintf("Recurring expenses of %s take %.0f%% of your monthly income.",
			money(in.Detail.MonthlyRecurringExpense), ratio*100),
		CTA: &models.CTA{Label: "Review recurring", Href: "/recurring"},
	}, nil
}

func inactiveGoalsRule(in Input) (*models.Insight, error) {
	if err := in.Detail.available(DetailGoals); err != nil {
		return nil, err
	}
	n := in.Detail.InactiveGoals
	if n <= 0 {
		return nil, nil
	}
	noun := "goal has"
	if n > 1 {
		noun = "goals have"
	}
	return &models.Insight{
		ID:       IDInactiveGoals,
		Severity: models.SeverityWarning,
		Title:    "Goals without progress",
		Body:     fmt.Sprintf("%d savings %s had no contributions for %d days.", n, noun, in.Thresholds.InactiveGoalDays),
		CTA:      &models.CTA{Label: "View goals", Href: "/goals"},
	}, nil
}

func elevatedFeesRule(in Input) (*models.Insight, error) {
	if err := in.Detail.available(DetailFees); err != nil {
		return nil, err
	}
	if in.KPIs.Income <= 0 {
		return nil, nil
	}
	ratio := in.Detail.Fees / in.KPIs.Income

	var severity models.Severity
	switch {
	case ratio >= in.Thresholds.FeesDanger:
		severity = models.SeverityDanger
	case ratio >= in.Thresholds.FeesWarn:
		severity = models.SeverityWarning
	default:
		return nil, nil
	}
	return &models.Insight{
		ID:       IDElevatedFees,
		Severity: severity,
		Title:    "Elevated fees",
		Body:     fmt.Sprintf("Fees and commissions of %s are %.1f%% of your income.", money(in.Detail.Fees), ratio*100),
		CTA:      &models.CTA{Label: "See fees", Href: "/transactions?category=fees"},
	}, nil
}

func noBudgetsRule(in Input) (*models.Insight, error) {
	if err := in.Detail.available(DetailBudgets); err != nil {
		return nil, err
	}
	for _, b := range in.Detail.Budgets {
		if b.Budget > 0 {
			return nil, nil
		}
	}
	return &models.Insight{
		ID:       IDNoBudgets,
		Severity: models.SeverityInfo,
		Title:    "No budgets set",
		Body:     "Set category budgets to get alerts before you overspend.",
		CTA:      &models.CTA{Label: "Create budget", Href: "/budgets/new"},
	}, nil
}

func forecast30Rule(in Input) (*models.Insight, error) {
	h, ok := horizon(in.Forecast, 30)
	if !ok || h.ProjectedBalance >= 0 {
		return nil, nil
	}
	return &models.Insight{
		ID:       IDForecast30,
		Severity: models.SeverityDanger,
		Title:    "Negative balance within 30 days",
		Body:     fmt.Sprintf("Your projected balance in 30 days is %s.", money(h.ProjectedBalance)),
		CTA:      &models.CTA{Label: "View forecast", Href: "/forecast"},
	}, nil
}

func forecast60Rule(in Input) (*models.Insight, error) {
	if h30, ok := horizon(in.Forecast, 30); ok && h30.ProjectedBalance < 0 {
		return nil, nil
	}
	h, ok := horizon(in.Forecast, 60)
	if !ok || h.ProjectedBalance >= 0 {
		return nil, nil
	}
	return &models.Insight{
		ID:       IDForecast60,
		Severity: models.SeverityWarning,
		Title:    "Negative balance within 60 days",
		Body:     fmt.Sprintf("Your projected balance in 60 days is %s.", money(h.ProjectedBalance)),
		CTA:      &models.CTA{Label: "View forecast", Href: "/forecast"},
	}, nil
}

func horizon(forecast []models.ForecastHorizon, days int) (models.ForecastHorizon, bool) {
	for _, h := range forecast {
		if h.Days == days {
			return h, true
		}
	}
	return models.ForecastHorizon{}, false
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
