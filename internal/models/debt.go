package models

import "time"

// Debt represents an obligation with a due date
type Debt struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"user_id"`
	Name    string    `json:"name"`
	Total   float64   `json:"total"`
	Paid    float64   `json:"paid"`
	DueDate time.Time `json:"due_date"`
}

// Remaining is the unpaid part of the debt, never negative
func (d Debt) Remaining() float64 {
	if d.Paid >= d.Total {
		return 0
	}
	return d.Total - d.Paid
}
