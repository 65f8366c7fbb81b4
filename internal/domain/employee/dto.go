package employee

import "github.com/kpimanager/kpi-backend-go/internal/pkg/validator"

const DefaultPageSize = 100

type ListFilter struct {
	// Query matches employee number or full name, case-insensitive.
	Query    string
	Page     int
	PageSize int
}

func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
}

type CreateEmployeeRequest struct {
	EmployeeNumber *string `json:"employee_number"`
	FullName       string  `json:"full_name"`
	PositionID     *string `json:"position_id"`
	SupervisorID   *string `json:"supervisor_id"`
	Email          *string `json:"email"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not valid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"` // From URL
	FullName     string  `json:"full_name"`
	PositionID   *string `json:"position_id"`
	SupervisorID *string `json:"supervisor_id"`
	Email        *string `json:"email"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not valid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// EmployeeDetail is the listing row with resolved position and supervisor.
type EmployeeDetail struct {
	ID             string  `json:"id"`
	EmployeeNumber *string `json:"employee_number"`
	FullName       string  `json:"full_name"`
	PositionID     *string `json:"position_id"`
	PositionName   *string `json:"position_name"`
	SupervisorID   *string `json:"supervisor_id"`
	SupervisorName *string `json:"supervisor_name"`
	Email          *string `json:"email"`
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
