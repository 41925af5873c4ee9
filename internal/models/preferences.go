package models

// Preferences holds per-user alert thresholds (percent of budget)
type Preferences struct {
	WarnPct   float64 `json:"warn"`
	DangerPct float64 `json:"danger"`
}
