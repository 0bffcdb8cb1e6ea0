package domain

import "time"

// Observation is one raw index level for an entity. Immutable once loaded;
// timestamps within an entity are expected to be unique and, once sorted,
// to sit on a regular period grid.
type Observation struct {
	EntityID  string
	Timestamp time.Time
	Level     float64
}

// ChangeRate is the derived per-observation change record. MoMPct and YoYPct
// are nil when the required history is missing or the prior level is not a
// usable denominator.
type ChangeRate struct {
	EntityID  string
	Timestamp time.Time
	Level     float64
	MoMPct    *float64
	YoYPct    *float64
}

// MetricSet summarizes the latest state of one entity's series. Every derived
// field is optional; consumers must check for absence before use.
type MetricSet struct {
	EntityID       string
	CurrentLevel   float64
	LatestDate     time.Time
	MoMPct         *float64
	YoYPct         *float64
	ThreeMonthPct  *float64
	VolatilityPct  *float64
	ObservationLen int
}
