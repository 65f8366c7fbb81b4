package orgchart

import "github.com/kpimanager/kpi-backend-go/internal/pkg/validator"

// MoveRequest is the drag-and-drop payload from the tree widget. The
// position id keeps its legacy wire name.
type MoveRequest struct {
	EmployeeID string `json:"employee_id"`
	PositionID string `json:"puesto_id"`
}

func (r *MoveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.PositionID) {
		errs = append(errs, validator.ValidationError{
			Field:   "puesto_id",
			Message: "puesto_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
