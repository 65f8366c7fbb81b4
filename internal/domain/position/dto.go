package position

import "github.com/kpimanager/kpi-backend-go/internal/pkg/validator"

type CreatePositionRequest struct {
	Name           string  `json:"name"`
	DepartmentID   *string `json:"department_id"`
	BossPositionID *string `json:"boss_position_id"`
}

func (r *CreatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 150 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 150 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePositionRequest struct {
	ID             string  `json:"-"` // From URL
	Name           string  `json:"name"`
	DepartmentID   *string `json:"department_id"`
	BossPositionID *string `json:"boss_position_id"`
}

func (r *UpdatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 150 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 150 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PositionDetail is the listing row with resolved department and boss names.
type PositionDetail struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DepartmentID   *string `json:"department_id"`
	DepartmentName *string `json:"department_name"`
	BossPositionID *string `json:"boss_position_id"`
	BossName       *string `json:"boss_name"`
}

type PositionResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DepartmentID   *string `json:"department_id"`
	BossPositionID *string `json:"boss_position_id"`
}
