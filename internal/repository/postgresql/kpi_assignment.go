package postgresql

import (
	"context"
	"fmt"

	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

type kpiAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewKpiAssignmentRepository(db *database.DB) kpi.AssignmentRepository {
	return &kpiAssignmentRepositoryImpl{db: db}
}

// DeleteByPosition implements kpi.AssignmentRepository.
func (r *kpiAssignmentRepositoryImpl) DeleteByPosition(ctx context.Context, positionID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM position_kpis WHERE position_id = $1`

	if _, err := q.Exec(ctx, query, positionID); err != nil {
		return fmt.Errorf("failed to delete kpi assignments: %w", err)
	}

	return nil
}

// Add implements kpi.AssignmentRepository.
func (r *kpiAssignmentRepositoryImpl) Add(ctx context.Context, positionID string, kpiID string) error {
	q := GetQuerier(ctx, r.db)

	query := `INSERT INTO position_kpis (position_id, kpi_id) VALUES ($1, $2)`

	if _, err := q.Exec(ctx, query, positionID, kpiID); err != nil {
		return fmt.Errorf("failed to add kpi assignment: %w", err)
	}

	return nil
}

// ListAll implements kpi.AssignmentRepository.
func (r *kpiAssignmentRepositoryImpl) ListAll(ctx context.Context) (map[string][]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT position_id, kpi_id FROM position_kpis`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi assignments: %w", err)
	}
	defer rows.Close()

	assignments := make(map[string][]string)
	for rows.Next() {
		var positionID, kpiID string
		if err := rows.Scan(&positionID, &kpiID); err != nil {
			return nil, fmt.Errorf("failed to scan kpi assignment: %w", err)
		}
		assignments[positionID] = append(assignments[positionID], kpiID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return assignments, nil
}
