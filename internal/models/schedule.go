package models

import "time"

// Frequency is the cadence of a recurring schedule
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// RecurringSchedule defines a repeating income, expense or saving
type RecurringSchedule struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Type       FlowType   `json:"type"`
	Amount     float64    `json:"amount"`
	Frequency  Frequency  `json:"frequency"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Indefinite bool       `json:"indefinite"`
}

// ExceptionAction tells how an exception alters one occurrence
type ExceptionAction string

const (
	ExceptionSkip     ExceptionAction = "skip"
	ExceptionPostpone ExceptionAction = "postpone"
	ExceptionMove     ExceptionAction = "move"
)

// ScheduleException overrides a single occurrence of a schedule
type ScheduleException struct {
	ID           int64           `json:"id"`
	ScheduleID   int64           `json:"schedule_id"`
	OriginalDate time.Time       `json:"original_date"`
	NewDate      *time.Time      `json:"new_date,omitempty"`
	Action       ExceptionAction `json:"action"`
}

// Occurrence is one concrete dated instance of a schedule. Never persisted.
type Occurrence struct {
	ScheduleID int64
	Date       time.Time
	Amount     float64
	Type       FlowType
}
