package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kpimanager/kpi-backend-go/internal/domain/scorecard"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

type kpiResultRepositoryImpl struct {
	db *database.DB
}

func NewKpiResultRepository(db *database.DB) scorecard.ResultRepository {
	return &kpiResultRepositoryImpl{db: db}
}

// ListForPosition implements scorecard.ResultRepository.
func (r *kpiResultRepositoryImpl) ListForPosition(ctx context.Context, positionID, employeeID string, period time.Time) ([]scorecard.Row, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT k.id, k.description, k.unit, k.target, k.is_criterion,
			k.red_min, k.red_max, k.yellow_min, k.yellow_max, k.green_min, k.green_max,
			kr.value, kr.result_text, COALESCE(kr.closed, FALSE)
		FROM position_kpis pk
		JOIN kpis k ON pk.kpi_id = k.id
		LEFT JOIN kpi_results kr
			ON kr.kpi_id = k.id AND kr.employee_id = $1 AND kr.period = $2
		WHERE pk.position_id = $3
		ORDER BY k.description ASC
	`

	rows, err := q.Query(ctx, query, employeeID, period, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list kpi results: %w", err)
	}
	defer rows.Close()

	var results []scorecard.Row
	for rows.Next() {
		var row scorecard.Row
		err := rows.Scan(
			&row.KpiID,
			&row.Description,
			&row.Unit,
			&row.Target,
			&row.IsCriterion,
			&row.Red.Min,
			&row.Red.Max,
			&row.Yellow.Min,
			&row.Yellow.Max,
			&row.Green.Min,
			&row.Green.Max,
			&row.Value,
			&row.Text,
			&row.Closed,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan kpi result: %w", err)
		}
		results = append(results, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return results, nil
}

// Upsert implements scorecard.ResultRepository. The unique key is
// (employee_id, kpi_id, period); resubmission updates in place and does
// not touch the closed flag.
func (r *kpiResultRepositoryImpl) Upsert(ctx context.Context, res scorecard.Result) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO kpi_results (id, employee_id, kpi_id, period, value, result_text, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (employee_id, kpi_id, period)
		DO UPDATE SET value = EXCLUDED.value, result_text = EXCLUDED.result_text, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, res.EmployeeID, res.KpiID, res.Period, res.Value, res.Text); err != nil {
		return fmt.Errorf("failed to upsert kpi result: %w", err)
	}

	return nil
}

// CloseAll implements scorecard.ResultRepository. closed_by references
// employees, so it takes an employee id or nil, never a user id.
func (r *kpiResultRepositoryImpl) CloseAll(ctx context.Context, employeeID string, period time.Time, closedBy *string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE kpi_results
		SET closed = TRUE, closed_by = $1, updated_at = NOW()
		WHERE employee_id = $2 AND period = $3
	`

	commandTag, err := q.Exec(ctx, query, closedBy, employeeID, period)
	if err != nil {
		return 0, fmt.Errorf("failed to close kpi results: %w", err)
	}

	return commandTag.RowsAffected(), nil
}
