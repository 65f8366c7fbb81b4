package scorecard

import (
	"testing"
	"time"
)

func TestNewPeriodNormalizesDayAndClock(t *testing.T) {
	in := time.Date(2026, time.August, 28, 17, 45, 3, 0, time.UTC)
	got := NewPeriod(in)
	want := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NewPeriod(%v) = %v, want %v", in, got, want)
	}
}

func TestNewPeriodIsIdempotent(t *testing.T) {
	p := NewPeriod(time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC))
	if !NewPeriod(p).Equal(p) {
		t.Error("normalizing a canonical period must not change it")
	}
}

func TestParsePeriod(t *testing.T) {
	got, err := ParsePeriod("2025-12")
	if err != nil {
		t.Fatalf("ParsePeriod: %v", err)
	}
	want := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParsePeriod(\"2025-12\") = %v, want %v", got, want)
	}

	if _, err := ParsePeriod("2025-12-01"); err == nil {
		t.Error("expected full dates to be rejected")
	}
	if _, err := ParsePeriod("garbage"); err == nil {
		t.Error("expected garbage to be rejected")
	}
}

func TestFormatPeriodRoundTrips(t *testing.T) {
	p, _ := ParsePeriod("2026-03")
	if FormatPeriod(p) != "2026-03" {
		t.Errorf("FormatPeriod = %q, want \"2026-03\"", FormatPeriod(p))
	}
}
