package kpi

// Status is the classification of a numeric KPI result.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
	StatusNone   Status = "none"
)

// Classify maps a result value to a status. Qualitative results and
// missing values are never classified. Ranges are tested green, then
// yellow, then red; when ranges overlap the better status wins. This
// priority is a product decision and must not be reordered.
func Classify(value *float64, qualitative bool, green, yellow, red Range) Status {
	if qualitative || value == nil {
		return StatusNone
	}

	switch {
	case green.Contains(*value):
		return StatusGreen
	case yellow.Contains(*value):
		return StatusYellow
	case red.Contains(*value):
		return StatusRed
	default:
		return StatusNone
	}
}

// Classify applies the definition's own ranges to a value.
func (d Definition) Classify(value *float64) Status {
	return Classify(value, d.IsCriterion, d.Green, d.Yellow, d.Red)
}
