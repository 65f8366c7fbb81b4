package kpi

import "context"

type KpiRepository interface {
	Create(ctx context.Context, d Definition) (Definition, error)
	GetByID(ctx context.Context, id string) (Definition, error)
	// Search matches id, description or department name; empty query
	// returns the whole catalog. Ordered by description.
	Search(ctx context.Context, query string) ([]DefinitionDetail, error)
	ListRefs(ctx context.Context) ([]Ref, error)
	Update(ctx context.Context, req UpdateKpiRequest) error
}

// AssignmentRepository manages the position <-> KPI links.
type AssignmentRepository interface {
	DeleteByPosition(ctx context.Context, positionID string) error
	Add(ctx context.Context, positionID string, kpiID string) error
	// ListAll returns assigned KPI ids keyed by position id.
	ListAll(ctx context.Context) (map[string][]string, error)
}
