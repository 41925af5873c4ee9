package models

import "time"

// FlowType classifies money movement
type FlowType string

const (
	FlowIncome  FlowType = "income"
	FlowExpense FlowType = "expense"
	FlowSaving  FlowType = "saving"
)

// Valid reports whether f is a known flow type
func (f FlowType) Valid() bool {
	switch f {
	case FlowIncome, FlowExpense, FlowSaving:
		return true
	}
	return false
}

// IsInflow reports whether the flow adds to projected cash.
// Savings schedules are treated as inflow by the forecast.
func (f FlowType) IsInflow() bool {
	return f == FlowIncome || f == FlowSaving
}

// Transaction represents a categorized financial transaction.
// Applied is false for pending (future, one-off) transactions.
type Transaction struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	AccountID   int64     `json:"account_id"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	Amount      float64   `json:"amount"`
	Type        FlowType  `json:"type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Applied     bool      `json:"applied"`
}

// MonthTotals aggregates applied transactions of one month by flow type
type MonthTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Saving  float64 `json:"saving"`
}
