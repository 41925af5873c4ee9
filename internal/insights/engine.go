// Package insights evaluates advisory rules over month KPIs and the forecast.
package insights

import (
	"errors"

	"github.com/Dan9191/finance-service/internal/metrics"
	"github.com/Dan9191/finance-service/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrDetailUnavailable is returned by a rule whose optional detail could not be fetched
var ErrDetailUnavailable = errors.New("rule detail unavailable")

// DetailKind names a piece of optional rule input fetched separately from the KPIs
type DetailKind string

const (
	DetailBudgets   DetailKind = "budgets"
	DetailRecurring DetailKind = "recurring"
	DetailFees      DetailKind = "fees"
	DetailGoals     DetailKind = "goals"
)

// Detail carries per-category and per-schedule data used by some rules.
// Missing records the fetch error of each kind that could not be loaded.
type Detail struct {
	Budgets                 []models.CategoryBudget
	MonthlyRecurringExpense float64
	Fees                    float64
	InactiveGoals           int
	Missing                 map[DetailKind]error
}

// MarkMissing records that a detail kind could not be fetched
func (d *Detail) MarkMissing(kind DetailKind, err error) {
	if d.Missing == nil {
		d.Missing = make(map[DetailKind]error)
	}
	d.Missing[kind] = err
}

func (d Detail) available(kind DetailKind) error {
	if err, ok := d.Missing[kind]; ok {
		return errors.Join(ErrDetailUnavailable, err)
	}
	return nil
}

// Thresholds configure when rules fire
type Thresholds struct {
	BudgetWarnPct   float64
	BudgetDangerPct float64

	RunRateWarn   float64
	RunRateDanger float64

	SavingsRateWarn float64

	RecurringWarn   float64
	RecurringDanger float64

	FeesWarn   float64
	FeesDanger float64

	InactiveGoalDays int
}

// DefaultThresholds returns the stock thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		BudgetWarnPct:    80,
		BudgetDangerPct:  100,
		RunRateWarn:      0.9,
		RunRateDanger:    1.1,
		SavingsRateWarn:  0.05,
		RecurringWarn:    0.4,
		RecurringDanger:  0.7,
		FeesWarn:         0.02,
		FeesDanger:       0.05,
		InactiveGoalDays: 60,
	}
}

// Input is everything a rule may look at
type Input struct {
	KPIs       models.KPISet
	Forecast   []models.ForecastHorizon
	Detail     Detail
	Thresholds Thresholds
}

// Rule evaluates one advisory. A nil insight with a nil error means the rule
// did not fire.
type Rule interface {
	ID() string
	// Expensive rules need per-category or per-schedule detail and are skipped in fast mode.
	Expensive() bool
	Evaluate(in Input) (*models.Insight, error)
}

// RuleFunc adapts a function to the Rule interface
type RuleFunc struct {
	Name  string
	Heavy bool
	Fn    func(in Input) (*models.Insight, error)
}

func (r RuleFunc) ID() string      { return r.Name }
func (r RuleFunc) Expensive() bool { return r.Heavy }

func (r RuleFunc) Evaluate(in Input) (*models.Insight, error) {
	return r.Fn(in)
}

// Engine runs an ordered list of independent rules
type Engine struct {
	rules []Rule
	log   *logrus.Logger
}

// NewEngine builds an engine; with no rules given it uses DefaultRules
func NewEngine(log *logrus.Logger, rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules, log: log}
}

// Evaluate runs every rule and returns the insights in rule order.
// A failing rule is logged and skipped; the others still run.
func (e *Engine) Evaluate(in Input, fast bool) []models.Insight {
	out := make([]models.Insight, 0, len(e.rules))
	for _, r := range e.rules {
		if fast && r.Expensive() {
			continue
		}
		insight, err := r.Evaluate(in)
		if err != nil {
			e.log.WithField("rule", r.ID()).Warnf("Rule skipped: %v", err)
			metrics.IncRuleSkipped(r.ID())
			continue
		}
		if insight != nil {
			out = append(out, *insight)
		}
	}
	return out
}
