package scorecard

import (
	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/validator"
)

// Row is one assigned KPI with its (possibly absent) result for the
// period. A nil Value and Text simply mean "not yet entered".
type Row struct {
	KpiID       string     `json:"kpi_id"`
	Description string     `json:"description"`
	Unit        *string    `json:"unit"`
	Target      *float64   `json:"target"`
	IsCriterion bool       `json:"is_criterion"`
	Red         kpi.Range  `json:"red"`
	Yellow      kpi.Range  `json:"yellow"`
	Green       kpi.Range  `json:"green"`
	Value       *float64   `json:"value"`
	Text        *string    `json:"text"`
	Closed      bool       `json:"closed"`
	Status      kpi.Status `json:"status"`
}

// Classify fills the display status from the row's own ranges.
func (r *Row) Classify() {
	r.Status = kpi.Classify(r.Value, r.IsCriterion, r.Green, r.Yellow, r.Red)
}

type EmployeeRef struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	PositionID   *string `json:"position_id"`
	PositionName *string `json:"position_name"`
}

type SubordinateScorecard struct {
	Employee EmployeeRef `json:"employee"`
	Kpis     []Row       `json:"kpis"`
}

// ScorecardResponse is the monthly KPI view for one employee plus one
// level of direct reports. HasPosition false is a legitimate,
// displayable state carrying no KPI data.
type ScorecardResponse struct {
	Employee     EmployeeRef            `json:"employee"`
	Period       string                 `json:"period"`
	HasPosition  bool                   `json:"has_position"`
	OwnKpis      []Row                  `json:"own_kpis"`
	Subordinates []SubordinateScorecard `json:"subordinates"`
}

// SubmitEntry is one (kpi, value, text) record of a submission. Value is
// the raw form input; parsing happens in the service so a malformed
// number degrades to "no value" instead of rejecting the batch.
type SubmitEntry struct {
	KpiID string `json:"kpi_id"`
	Value string `json:"value"`
	Text  string `json:"text"`
}

type SubmitRequest struct {
	EmployeeID string        `json:"employee_id"`
	Period     string        `json:"period"`
	Entries    []SubmitEntry `json:"entries"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsEmpty(r.Period) {
		if _, ok := validator.IsValidPeriod(r.Period); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "period",
				Message: "period must be in YYYY-MM format",
			})
		}
	}

	for i, e := range r.Entries {
		if validator.IsEmpty(e.KpiID) {
			errs = append(errs, validator.ValidationError{
				Field:   "entries[" + validator.Itoa(i) + "].kpi_id",
				Message: "kpi_id is required",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClosePeriodRequest struct {
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"`
}

func (r *ClosePeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsEmpty(r.Period) {
		if _, ok := validator.IsValidPeriod(r.Period); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "period",
				Message: "period must be in YYYY-MM format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
