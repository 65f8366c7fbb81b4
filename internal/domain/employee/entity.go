package employee

import "time"

type Employee struct {
	ID string
	// External payroll key ("numero de empleado"), digits left-padded
	// to five characters. Nil for manually created records.
	EmployeeNumber *string
	FullName       string
	PositionID     *string
	SupervisorID   *string
	Email          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
