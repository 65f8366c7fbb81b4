package kpi

import "testing"

func fp(v float64) *float64 { return &v }

func rng(min, max float64) Range {
	return Range{Min: fp(min), Max: fp(max)}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name        string
		value       *float64
		qualitative bool
		green       Range
		yellow      Range
		red         Range
		want        Status
	}{
		{
			name:  "value in green",
			value: fp(85),
			green: rng(80, 100),
			want:  StatusGreen,
		},
		{
			name:   "value in yellow",
			value:  fp(55),
			yellow: rng(50, 70),
			red:    rng(0, 49),
			want:   StatusYellow,
		},
		{
			name:   "value in red",
			value:  fp(30),
			red:    rng(0, 49),
			yellow: rng(50, 70),
			want:   StatusRed,
		},
		{
			name:  "nil value is never classified",
			value: nil,
			green: rng(0, 100),
			red:   rng(0, 100),
			want:  StatusNone,
		},
		{
			name:        "qualitative is never classified",
			value:       fp(85),
			qualitative: true,
			green:       rng(80, 100),
			want:        StatusNone,
		},
		{
			name:  "no range matches",
			value: fp(200),
			green: rng(80, 100),
			red:   rng(0, 49),
			want:  StatusNone,
		},
		{
			name:   "overlapping ranges: green beats yellow",
			value:  fp(60),
			green:  rng(50, 70),
			yellow: rng(50, 70),
			want:   StatusGreen,
		},
		{
			name:   "overlapping ranges: yellow beats red",
			value:  fp(60),
			yellow: rng(40, 70),
			red:    rng(0, 70),
			want:   StatusYellow,
		},
		{
			name:  "inclusive lower bound",
			value: fp(80),
			green: rng(80, 100),
			want:  StatusGreen,
		},
		{
			name:  "inclusive upper bound",
			value: fp(100),
			green: rng(80, 100),
			want:  StatusGreen,
		},
		{
			name:  "half-open range never matches",
			value: fp(90),
			green: Range{Min: fp(80)},
			red:   Range{Max: fp(100)},
			want:  StatusNone,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Classify(c.value, c.qualitative, c.green, c.yellow, c.red)
			if got != c.want {
				t.Errorf("Classify() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestDefinitionClassify(t *testing.T) {
	metric := Definition{Green: rng(80, 100), Yellow: rng(50, 79), Red: rng(0, 49)}
	if got := metric.Classify(fp(65)); got != StatusYellow {
		t.Errorf("metric.Classify(65) = %q, want yellow", got)
	}

	criterion := Definition{IsCriterion: true, Green: rng(0, 100)}
	if got := criterion.Classify(fp(50)); got != StatusNone {
		t.Errorf("criterion.Classify(50) = %q, want none", got)
	}
}

func TestRangeContains(t *testing.T) {
	r := rng(10, 20)
	if !r.Contains(10) || !r.Contains(20) || !r.Contains(15) {
		t.Error("expected bounds to be inclusive")
	}
	if r.Contains(9.999) || r.Contains(20.001) {
		t.Error("expected values outside bounds to be rejected")
	}
	if (Range{Min: fp(10)}).Contains(15) {
		t.Error("range without max must never match")
	}
	if (Range{Max: fp(20)}).Contains(15) {
		t.Error("range without min must never match")
	}
}
