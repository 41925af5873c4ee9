package models

// Severity ranks an advisory
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// CTA is an optional call to action attached to an insight
type CTA struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Insight is a single advisory produced by a rule
type Insight struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	CTA      *CTA     `json:"cta,omitempty"`
}

// Thresholds are the budget alert percentages echoed in the payload
type Thresholds struct {
	Warn   float64 `json:"warn"`
	Danger float64 `json:"danger"`
}

// InsightsMeta describes how a payload was computed
type InsightsMeta struct {
	Month         string            `json:"month"`
	Thresholds    Thresholds        `json:"thresholds"`
	Forecast      []ForecastHorizon `json:"forecast"`
	IncludeFuture bool              `json:"includeFuture"`
	Fast          bool              `json:"fast"`
}

// InsightsPayload is the full response of the insights endpoint
type InsightsPayload struct {
	KPIs     KPISet       `json:"kpis"`
	Insights []Insight    `json:"insights"`
	Meta     InsightsMeta `json:"meta"`
}
