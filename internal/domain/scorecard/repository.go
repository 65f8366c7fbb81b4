package scorecard

import (
	"context"
	"time"
)

type ResultRepository interface {
	// ListForPosition returns the KPIs assigned to the position,
	// left-joined with the employee's results for the period, ordered by
	// description. Rows without a result come back with nil value/text.
	ListForPosition(ctx context.Context, positionID, employeeID string, period time.Time) ([]Row, error)
	// Upsert inserts or updates the row keyed by (employee, kpi, period).
	Upsert(ctx context.Context, res Result) error
	// CloseAll marks every result of the employee and period as closed
	// and records the closer's employee id, nil when the closing account
	// has no linked employee. Returns the number of rows touched.
	CloseAll(ctx context.Context, employeeID string, period time.Time, closedBy *string) (int64, error)
}
