package scorecard

import "time"

// Results are stored per calendar month. The canonical period key is the
// first day of the month at midnight UTC; the day-of-month of any input
// carries no meaning and is normalized away.

// NewPeriod truncates t to its canonical period.
func NewPeriod(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// CurrentPeriod returns the canonical period for the current month.
func CurrentPeriod() time.Time {
	return NewPeriod(time.Now().UTC())
}

// ParsePeriod parses a "YYYY-MM" period string.
func ParsePeriod(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, err
	}
	return NewPeriod(t), nil
}

// FormatPeriod renders the canonical "YYYY-MM" form.
func FormatPeriod(t time.Time) string {
	return t.Format("2006-01")
}
