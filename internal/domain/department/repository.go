package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, name string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	// GetByName matches the exact name; used for import dedup.
	GetByName(ctx context.Context, name string) (Department, error)
}
