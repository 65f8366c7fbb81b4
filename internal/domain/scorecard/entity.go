package scorecard

import "time"

// Result is one KPI outcome for an employee and period. The
// (EmployeeID, KpiID, Period) triple is unique; resubmitting for the
// same triple updates the row in place.
type Result struct {
	ID         string
	EmployeeID string
	KpiID      string
	Period     time.Time
	Value      *float64
	Text       *string
	Closed     bool
	ClosedBy   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
