package models

// CategoryBudget is a category's budget and month-to-date spend
type CategoryBudget struct {
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"name"`
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
}

// Goal represents a savings goal
type Goal struct {
	ID     int64   `json:"id"`
	UserID int64   `json:"user_id"`
	Name   string  `json:"name"`
	Target float64 `json:"target"`
	Saved  float64 `json:"saved"`
}
