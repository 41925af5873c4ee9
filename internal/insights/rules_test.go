package insights

import (
	"errors"
	"io"
	"testing"

	"github.com/Dan9191/finance-service/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func rate(v float64) *float64 { return &v }

func baseInput() Input {
	return Input{
		KPIs:       models.KPISet{Income: 1000, Expense: 100, NetSavings: 900, SavingsRate: rate(0.9)},
		Detail:     Detail{Budgets: []models.CategoryBudget{{CategoryID: 1, Name: "Food", Budget: 100, Spent: 10}}},
		Thresholds: DefaultThresholds(),
	}
}

func TestRunRateRule(t *testing.T) {
	in := baseInput()
	in.KPIs.RunRate = models.RunRate{DailyAvgExpense: 45, ProjectedExpense: 1350, DaysElapsed: 20, DaysInMonth: 30}

	got, err := runRateRule(in)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.SeverityDanger, got.Severity)
	assert.Contains(t, got.Body, "1350.00")
	assert.Contains(t, got.Body, "45.00")

	in.KPIs.RunRate.ProjectedExpense = 950
	got, _ = runRateRule(in)
	require.NotNil(t, got)
	assert.Equal(t, models.SeverityWarning, got.Severity)

	in.KPIs.RunRate.ProjectedExpense = 800
	got, _ = runRateRule(in)
	assert.Nil(t, got)

	in.KPIs.Income = 0
	in.KPIs.RunRate.ProjectedExpense = 5000
	got, _ = runRateRule(in)
	assert.Nil(t, got)
}

func TestBudgetOverrunRule(t *testing.T) {
	cases := []struct {
		name  string
		spent float64
		want  models.Severity
	}{
		{"over danger threshold", 105, models.SeverityDanger},
		{"exactly at danger threshold", 100, models.SeverityDanger},
		{"inside warn band", 85, models.SeverityWarning},
		{"below warn", 50, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput()
			in.Detail.Budgets = []models.CategoryBudget{{CategoryID: 1, Name: "Food", Budget: 100, Spent: tc.spent}}

			got, err := budgetOverrunRule(in)
			require.NoError(t, err)
			if tc.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got.Severity)
			assert.Contains(t, got.Body, "Food")
		})
	}
}

func TestBudgetOverrunRule_TopThreeByPct(t *testing.T) {
	in := baseInput()
	in.Detail.Budgets = []models.CategoryBudget{
		{Name: "Food", Budget: 100, Spent: 110},
		{Name: "Rent", Budget: 100, Spent: 150},
		{Name: "Fun", Budget: 100, Spent: 101},
		{Name: "Travel", Budget: 100, Spent: 130},
		{Name: "Gym", Budget: 100, Spent: 90},
		{Name: "Unbudgeted", Budget: 0, Spent: 500},
	}

	got, err := budgetOverrunRule(in)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.SeverityDanger, got.Severity)
	assert.Equal(t, "Over budget: Rent (150%), Travel (130%), Food (110%).", got.Body)
}

func TestBudgetOverrunRule_CustomThresholds(t *testing.T) {
	in := baseInput()
	in.Thresholds.BudgetWarnPct = 50
	in.Thresholds.BudgetDangerPct = 70
	in.Detail.Budgets = []models.CategoryBudget{{Name: "Food", Budget: 100, Spent: 60}}

	got, err := budgetOverrunRule(in)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.SeverityWarning, got.Severity)
}

func TestSavingsRateRule(t *testing.T) {
	in := baseInput()

	in.KPIs.SavingsRate = nil
	got, _ := savingsRateRule(in)
	assert.Nil(t, got)

	in.KPIs.SavingsRate = rate(-0.2)
	in.KPIs.NetSavings = -200
	got, _ = savingsRateRule(in)
	require.NotNil(t, got)
	assert.Equal(t, models.SeverityDanger, got.Severity)
	assert.Contains(t, got.Body, "200.00")

	in.KPIs.SavingsRate = rate(0)
	got, _ = savingsRateRule(in)
	require.NotNil(t, got)
	assert.Equal(t, models.SeverityWarning, got.Severity)

	in.KPIs.SavingsRate = rate(0.05)
	got, _ = savingsRateRule(in)
	assert.Nil(t, got)
}

func TestRecurringPressureRule(t *testing.T) {
	in := baseInput()

	in.Detail.MonthlyRecurringExpense = 700
	got, err := recurringPressureRule(in)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityDanger, got.Severity)

	in.Detail.MonthlyRecurringExpense = 400
	got, _ = recurringPressureRule(in)
	assert.Equal(t, models.SeverityWarning, got.Severity)

	in.Detail.MonthlyRecurringExpense = 399
	got, _ = recurringPressureRule(in)
	assert.Nil(t, got)

	in.Detail.MarkMissing(DetailRecurring, errors.New("timeout"))
	_, err = recurringPressureRule(in)
	assert.ErrorIs(t, err, ErrDetailUnavailable)
}

func TestElevatedFeesRule(t *testing.T) {
	in := baseInput()

	in.Detail.Fees = 50
	got, err := elevatedFeesRule(in)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityDanger, got.Severity)

	in.Detail.Fees = 20
	got, _ = elevatedFeesRule(in)
	assert.Equal(t, models.SeverityWarning, got.Severity)

	in.Detail.Fees = 19.99
	got, _ = elevatedFeesRule(in)
	assert.Nil(t, got)
}

func TestInactiveGoalsRule(t *testing.T) {
	in := baseInput()
	got, _ := inactiveGoalsRule(in)
	assert.Nil(t, got)

	in.Detail.InactiveGoals = 2
	got, _ = inactiveGoalsRule(in)
	require.NotNil(t, got)
	assert.Equal(t, models.SeverityWarning, got.Severity)
	assert.Contains(t, got.Body, "2 savings goals")
}

func TestNoBudgetsRule(t *testing.T) {
	in := baseInput()
	got, _ := noBudgetsRule(in)
	assert.Nil(t, got)

	in.Detail.Budgets = []models.CategoryBudget{{Name: "Food", Budget: 0, Spent: 20}}
	got, _ = noBudgetsRule(in)
	require.NotNil(t, got)
	assert.Equal(t, models.SeverityInfo, got.Severity)
}

func TestForecastRules(t *testing.T) {
	in := baseInput()
	in.Forecast = []models.ForecastHorizon{{Days: 30, ProjectedBalance: -10}, {Days: 60, ProjectedBalance: -50}}

	got30, _ := forecast30Rule(in)
	require.NotNil(t, got30)
	assert.Equal(t, models.SeverityDanger, got30.Severity)
	got60, _ := forecast60Rule(in)
	assert.Nil(t, got60, "60-day rule stays quiet when the 30-day rule fired")

	in.Forecast[0].ProjectedBalance = 10
	got30, _ = forecast30Rule(in)
	assert.Nil(t, got30)
	got60, _ = forecast60Rule(in)
	require.NotNil(t, got60)
	assert.Equal(t, models.SeverityWarning, got60.Severity)
	assert.Contains(t, got60.Body, "-50.00")
}
