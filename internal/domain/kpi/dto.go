package kpi

import "github.com/kpimanager/kpi-backend-go/internal/pkg/validator"

type CreateKpiRequest struct {
	Description  string   `json:"description"`
	Unit         *string  `json:"unit"`
	Target       *float64 `json:"target"`
	DepartmentID *string  `json:"department_id"`
	Red          Range    `json:"red"`
	Yellow       Range    `json:"yellow"`
	Green        Range    `json:"green"`
	IsCriterion  bool     `json:"is_criterion"`
}

func (r *CreateKpiRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	} else if len(r.Description) > 300 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 300 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateKpiRequest struct {
	ID           string   `json:"-"` // From URL
	Description  string   `json:"description"`
	Unit         *string  `json:"unit"`
	Target       *float64 `json:"target"`
	DepartmentID *string  `json:"department_id"`
	Red          Range    `json:"red"`
	Yellow       Range    `json:"yellow"`
	Green        Range    `json:"green"`
	IsCriterion  bool     `json:"is_criterion"`
}

func (r *UpdateKpiRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	} else if len(r.Description) > 300 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 300 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DefinitionDetail is the catalog listing row with the department name.
type DefinitionDetail struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	Unit           *string  `json:"unit"`
	Target         *float64 `json:"target"`
	DepartmentID   *string  `json:"department_id"`
	DepartmentName *string  `json:"department_name"`
	Red            Range    `json:"red"`
	Yellow         Range    `json:"yellow"`
	Green          Range    `json:"green"`
	IsCriterion    bool     `json:"is_criterion"`
}

// Ref is a minimal id + description pair for selection lists.
type Ref struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type AssignKpisRequest struct {
	KpiIDs []string `json:"kpi_ids"`
}
