package postgresql

import (
	"context"
	"fmt"

	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

type kpiRepositoryImpl struct {
	db *database.DB
}

func NewKpiRepository(db *database.DB) kpi.KpiRepository {
	return &kpiRepositoryImpl{db: db}
}

// Create implements kpi.KpiRepository.
func (r *kpiRepositoryImpl) Create(ctx context.Context, d kpi.Definition) (kpi.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO kpis (id, description, unit, target, department_id,
			red_min, red_max, yellow_min, yellow_max, green_min, green_max,
			is_criterion, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, description, unit, target, department_id,
			red_min, red_max, yellow_min, yellow_max, green_min, green_max, is_criterion
	`

	var result kpi.Definition
	err := q.QueryRow(ctx, query,
		d.Description, d.Unit, d.Target, d.DepartmentID,
		d.Red.Min, d.Red.Max, d.Yellow.Min, d.Yellow.Max, d.Green.Min, d.Green.Max,
		d.IsCriterion,
	).Scan(
		&result.ID,
		&result.Description,
		&result.Unit,
		&result.Target,
		&result.DepartmentID,
		&result.Red.Min,
		&result.Red.Max,
		&result.Yellow.Min,
		&result.Yellow.Max,
		&result.Green.Min,
		&result.Green.Max,
		&result.IsCriterion,
	)

	if err != nil {
		return kpi.Definition{}, fmt.Errorf("failed to create kpi: %w", err)
	}

	return result, nil
}

// GetByID implements kpi.KpiRepository.
func (r *kpiRepositoryImpl) GetByID(ctx context.Context, id string) (kpi.Definition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, description, unit, target, department_id,
			red_min, red_max, yellow_min, yellow_max, green_min, green_max, is_criterion
		FROM kpis
		WHERE id = $1
	`

	var result kpi.Definition
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Description,
		&result.Unit,
		&result.Target,
		&result.DepartmentID,
		&result.Red.Min,
		&result.Red.Max,
		&result.Yellow.Min,
		&result.Yellow.Max,
		&result.Green.Min,
		&result.Green.Max,
		&result.IsCriterion,
	)

	if err != nil {
		return kpi.Definition{}, fmt.Errorf("failed to get kpi: %w", err)
	}

	return result, nil
}

// Search implements kpi.KpiRepository.
func (r *kpiRepositoryImpl) Search(ctx context.Context, query string) ([]kpi.DefinitionDetail, error) {
	q := GetQuerier(ctx, r.db)

	sql := `
		SELECT k.id, k.description, k.unit, k.target, k.department_id, d.name,
			k.red_min, k.red_max, k.yellow_min, k.yellow_max, k.green_min, k.green_max,
			k.is_criterion
		FROM kpis k
		LEFT JOIN departments d ON k.department_id = d.id
	`
	args := []interface{}{}
	if query != "" {
		sql += ` WHERE k.id::text ILIKE $1 OR k.description ILIKE $1 OR d.name ILIKE $1`
		args = append(args, "%"+query+"%")
	}
	sql += ` ORDER BY k.description ASC`

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search kpis: %w", err)
	}
	defer rows.Close()

	var kpis []kpi.DefinitionDetail
	for rows.Next() {
		var k kpi.DefinitionDetail
		err := rows.Scan(
			&k.ID,
			&k.Description,
			&k.Unit,
			&k.Target,
			&k.DepartmentID,
			&k.DepartmentName,
			&k.Red.Min,
			&k.Red.Max,
			&k.Yellow.Min,
			&k.Yellow.Max,
			&k.Green.Min,
			&k.Green.Max,
			&k.IsCriterion,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kpi: %w", err)
		}
		kpis = append(kpis, k)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return kpis, nil
}

// ListRefs implements kpi.KpiRepository.
func (r *kpiRepositoryImpl) ListRefs(ctx context.Context) ([]kpi.Ref, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, description
		FROM kpis
		ORDER BY description ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpis: %w", err)
	}
	defer rows.Close()

	var refs []kpi.Ref
	for rows.Next() {
		var ref kpi.Ref
		if err := rows.Scan(&ref.ID, &ref.Description); err != nil {
			return nil, fmt.Errorf("failed to scan kpi: %w", err)
		}
		refs = append(refs, ref)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return refs, nil
}

// Update implements kpi.KpiRepository.
func (r *kpiRepositoryImpl) Update(ctx context.Context, req kpi.UpdateKpiRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kpis
		SET description = $1, unit = $2, target = $3, department_id = $4,
			red_min = $5, red_max = $6, yellow_min = $7, yellow_max = $8,
			green_min = $9, green_max = $10, is_criterion = $11, updated_at = NOW()
		WHERE id = $12
	`

	commandTag, err := q.Exec(ctx, query,
		req.Description, req.Unit, req.Target, req.DepartmentID,
		req.Red.Min, req.Red.Max, req.Yellow.Min, req.Yellow.Max,
		req.Green.Min, req.Green.Max, req.IsCriterion, req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update kpi: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return kpi.ErrKpiNotFound
	}

	return nil
}
