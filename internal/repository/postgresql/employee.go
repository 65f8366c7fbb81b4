package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, employee_number, full_name, position_id, supervisor_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, employee_number, full_name, position_id, supervisor_id, email
	`

	var result employee.Employee
	err := q.QueryRow(ctx, query, e.ID, e.EmployeeNumber, e.FullName, e.PositionID, e.SupervisorID, e.Email).Scan(
		&result.ID,
		&result.EmployeeNumber,
		&result.FullName,
		&result.PositionID,
		&result.SupervisorID,
		&result.Email,
	)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return result, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_number, full_name, position_id, supervisor_id, email
		FROM employees
		WHERE id = $1
	`

	var result employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.EmployeeNumber,
		&result.FullName,
		&result.PositionID,
		&result.SupervisorID,
		&result.Email,
	)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return result, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_number, full_name, position_id, supervisor_id, email
		FROM employees
		WHERE email = $1
	`

	var result employee.Employee
	err := q.QueryRow(ctx, query, email).Scan(
		&result.ID,
		&result.EmployeeNumber,
		&result.FullName,
		&result.PositionID,
		&result.SupervisorID,
		&result.Email,
	)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	return result, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeDetail, int64, error) {
	q := GetQuerier(ctx, r.db)

	filter.Normalize()

	where := ""
	args := []interface{}{}
	if filter.Query != "" {
		where = `WHERE e.employee_number ILIKE $1 OR e.full_name ILIKE $1`
		args = append(args, "%"+filter.Query+"%")
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees e %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	query := fmt.Sprintf(`
		SELECT e.id, e.employee_number, e.full_name,
		       e.position_id, p.name, e.supervisor_id, s.full_name, e.email
		FROM employees e
		LEFT JOIN positions p ON e.position_id = p.id
		LEFT JOIN employees s ON e.supervisor_id = s.id
		%s
		ORDER BY e.full_name ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.EmployeeDetail
	for rows.Next() {
		var e employee.EmployeeDetail
		err := rows.Scan(
			&e.ID,
			&e.EmployeeNumber,
			&e.FullName,
			&e.PositionID,
			&e.PositionName,
			&e.SupervisorID,
			&e.SupervisorName,
			&e.Email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, total, nil
}

// ListAll implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListAll(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_number, full_name, position_id, supervisor_id, email
		FROM employees
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// ListByPositionIDs implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByPositionIDs(ctx context.Context, positionIDs []string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_number, full_name, position_id, supervisor_id, email
		FROM employees
		WHERE position_id = ANY($1)
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, positionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by positions: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// FindAnyByPosition implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) FindAnyByPosition(ctx context.Context, positionID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_number, full_name, position_id, supervisor_id, email
		FROM employees
		WHERE position_id = $1
		LIMIT 1
	`

	var result employee.Employee
	err := q.QueryRow(ctx, query, positionID).Scan(
		&result.ID,
		&result.EmployeeNumber,
		&result.FullName,
		&result.PositionID,
		&result.SupervisorID,
		&result.Email,
	)

	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to find employee by position: %w", err)
	}

	return result, nil
}

// ListEmployeeNumbers implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListEmployeeNumbers(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT employee_number FROM employees WHERE employee_number IS NOT NULL`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee numbers: %w", err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan employee number: %w", err)
		}
		numbers = append(numbers, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return numbers, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, position_id = $2, supervisor_id = $3, email = $4, updated_at = NOW()
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, req.FullName, req.PositionID, req.SupervisorID, req.Email, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdatePosition implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdatePosition(ctx context.Context, id string, positionID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET position_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, positionID, id)
	if err != nil {
		return fmt.Errorf("failed to update employee position: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// UpdateSupervisor implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateSupervisor(ctx context.Context, id string, supervisorID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET supervisor_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	commandTag, err := q.Exec(ctx, query, supervisorID, id)
	if err != nil {
		return fmt.Errorf("failed to update employee supervisor: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func scanEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID,
			&e.EmployeeNumber,
			&e.FullName,
			&e.PositionID,
			&e.SupervisorID,
			&e.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return employees, nil
}
