package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]EmployeeDetail, int64, error)
	ListAll(ctx context.Context) ([]Employee, error)
	// ListByPositionIDs resolves the employees occupying any of the given
	// positions. Callers must not invoke it with an empty id set.
	ListByPositionIDs(ctx context.Context, positionIDs []string) ([]Employee, error)
	// FindAnyByPosition returns one arbitrary employee occupying the
	// position (LIMIT 1 semantics).
	FindAnyByPosition(ctx context.Context, positionID string) (Employee, error)
	ListEmployeeNumbers(ctx context.Context) ([]string, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) error
	UpdatePosition(ctx context.Context, id string, positionID string) error
	UpdateSupervisor(ctx context.Context, id string, supervisorID *string) error
}

// ImportRow is one record from the external incidencias personnel table.
type ImportRow struct {
	EmployeeNumber string
	FullName       string
	PositionName   string
	DepartmentName string
}

// ImportSource yields the raw personnel rows of the incidencias system.
type ImportSource interface {
	FetchPersonnel(ctx context.Context) ([]ImportRow, error)
}
