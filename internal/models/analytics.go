package models

// RunRate extrapolates the month-to-date expense pace to the whole month
type RunRate struct {
	DailyAvgExpense  float64 `json:"dailyAvgEgreso"`
	ProjectedExpense float64 `json:"projectedEgresos"`
	DaysElapsed      int     `json:"daysElapsed"`
	DaysInMonth      int     `json:"daysInMonth"`
}

// KPISet holds month-to-date indicators.
// SavingsRate is nil when income is zero.
type KPISet struct {
	Income      float64  `json:"ingresosMes"`
	Expense     float64  `json:"egresosMes"`
	NetSavings  float64  `json:"ahorroNeto"`
	SavingsRate *float64 `json:"ahorroRate"`
	RunRate     RunRate  `json:"runRate"`
}

// ForecastHorizon is the projected cashflow over a number of days
type ForecastHorizon struct {
	Days             int     `json:"days"`
	ProjectedInflow  float64 `json:"projectedIngresos"`
	ProjectedOutflow float64 `json:"projectedEgresos"`
	Net              float64 `json:"net"`
	StartingBalance  float64 `json:"startingBalance"`
	ProjectedBalance float64 `json:"projectedBalanceEnd"`
}
