package kpi

import "time"

// Definition is a catalog-level KPI. Metric KPIs carry a numeric result
// classified against the threshold ranges; criterion KPIs carry a
// free-text result and are never classified.
type Definition struct {
	ID           string
	Description  string
	Unit         *string
	Target       *float64
	DepartmentID *string
	Red          Range
	Yellow       Range
	Green        Range
	IsCriterion  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Range is an inclusive [Min, Max] threshold. A range with either bound
// missing never matches.
type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Contains reports whether v falls inside the range. Both bounds must be
// present.
func (r Range) Contains(v float64) bool {
	return r.Min != nil && r.Max != nil && *r.Min <= v && v <= *r.Max
}
