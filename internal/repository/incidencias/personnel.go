package incidencias

import (
	"context"
	"fmt"

	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

// PersonnelSource reads raw personnel rows from the external incidencias
// database. It is read-only; imports never write back.
type PersonnelSource struct {
	db *database.DB
}

func NewPersonnelSource(db *database.DB) employee.ImportSource {
	return &PersonnelSource{db: db}
}

// FetchPersonnel implements employee.ImportSource.
func (s *PersonnelSource) FetchPersonnel(ctx context.Context) ([]employee.ImportRow, error) {
	query := `
		SELECT COALESCE(employee_number::text, ''), COALESCE(full_name, ''),
		       COALESCE(puesto, ''), COALESCE(department_name, '')
		FROM personal
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incidencias personnel: %w", err)
	}
	defer rows.Close()

	var records []employee.ImportRow
	for rows.Next() {
		var rec employee.ImportRow
		err := rows.Scan(
			&rec.EmployeeNumber,
			&rec.FullName,
			&rec.PositionName,
			&rec.DepartmentName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incidencias row: %w", err)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
