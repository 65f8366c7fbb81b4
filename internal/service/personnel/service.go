package personnel

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/department"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

// PersonnelService manages employee records and the bulk import from
// the external incidencias system.
type PersonnelService interface {
	CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error)
	GetEmployee(ctx context.Context, id string) (employee.Employee, error)
	ListEmployees(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeDetail, int64, error)
	UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) error
	// Import pulls the incidencias personnel table and inserts the
	// employees whose number is not present yet. Existing records are
	// never modified. An unconfigured source yields an empty report, not
	// an error.
	Import(ctx context.Context) (employee.ImportReport, error)
}

type personnelServiceImpl struct {
	tx             database.TxRunner
	employeeRepo   employee.EmployeeRepository
	positionRepo   position.PositionRepository
	departmentRepo department.DepartmentRepository
	source         employee.ImportSource // nil when incidencias is not configured
	logger         *slog.Logger
}

func NewPersonnelService(
	tx database.TxRunner,
	employeeRepo employee.EmployeeRepository,
	positionRepo position.PositionRepository,
	departmentRepo department.DepartmentRepository,
	source employee.ImportSource,
	logger *slog.Logger,
) PersonnelService {
	return &personnelServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		positionRepo:   positionRepo,
		departmentRepo: departmentRepo,
		source:         source,
		logger:         logger,
	}
}

func (s *personnelServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	e := employee.Employee{
		ID:           uuid.NewString(),
		FullName:     strings.TrimSpace(req.FullName),
		PositionID:   req.PositionID,
		SupervisorID: req.SupervisorID,
		Email:        req.Email,
	}
	if req.EmployeeNumber != nil {
		if n := employee.NormalizeNumber(*req.EmployeeNumber); n != "" {
			e.EmployeeNumber = &n
		}
	}

	return s.employeeRepo.Create(ctx, e)
}

func (s *personnelServiceImpl) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func (s *personnelServiceImpl) ListEmployees(ctx context.Context, filter employee.ListFilter) ([]employee.EmployeeDetail, int64, error) {
	filter.Normalize()
	return s.employeeRepo.List(ctx, filter)
}

func (s *personnelServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	req.FullName = strings.TrimSpace(req.FullName)
	return s.employeeRepo.Update(ctx, req)
}

func (s *personnelServiceImpl) Import(ctx context.Context) (employee.ImportReport, error) {
	if s.source == nil {
		s.logger.WarnContext(ctx, "personnel import requested without a configured incidencias source")
		return employee.ImportReport{}, nil
	}

	rows, err := s.source.FetchPersonnel(ctx)
	if err != nil {
		return employee.ImportReport{}, err
	}

	report := employee.ImportReport{Fetched: len(rows)}

	existing, err := s.employeeRepo.ListEmployeeNumbers(ctx)
	if err != nil {
		return employee.ImportReport{}, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		seen[employee.NormalizeNumber(n)] = struct{}{}
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		for _, row := range rows {
			number := employee.NormalizeNumber(row.EmployeeNumber)
			fullName := strings.TrimSpace(row.FullName)
			if number == "" || fullName == "" {
				report.Skipped++
				continue
			}
			if _, dup := seen[number]; dup {
				report.Skipped++
				continue
			}

			positionID, err := s.resolvePosition(ctx, row.PositionName, row.DepartmentName)
			if err != nil {
				return err
			}

			_, err = s.employeeRepo.Create(ctx, employee.Employee{
				ID:             uuid.NewString(),
				EmployeeNumber: &number,
				FullName:       fullName,
				PositionID:     positionID,
			})
			if err != nil {
				return err
			}

			seen[number] = struct{}{}
			report.Imported++
		}
		return nil
	})
	if err != nil {
		return employee.ImportReport{}, err
	}

	s.logger.InfoContext(ctx, "personnel import finished",
		slog.Int("fetched", report.Fetched),
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
	)

	return report, nil
}

// resolvePosition finds or creates the position named in an import row,
// creating its department on the way when needed. A blank position name
// leaves the employee unassigned.
func (s *personnelServiceImpl) resolvePosition(ctx context.Context, positionName, departmentName string) (*string, error) {
	positionName = strings.TrimSpace(positionName)
	if positionName == "" {
		return nil, nil
	}

	pos, err := s.positionRepo.GetByName(ctx, positionName)
	if err == nil {
		return &pos.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var departmentID *string
	if name := strings.TrimSpace(departmentName); name != "" {
		dept, err := s.departmentRepo.GetByName(ctx, name)
		if errors.Is(err, pgx.ErrNoRows) {
			dept, err = s.departmentRepo.Create(ctx, name)
		}
		if err != nil {
			return nil, err
		}
		departmentID = &dept.ID
	}

	created, err := s.positionRepo.Create(ctx, position.Position{
		Name:         positionName,
		DepartmentID: departmentID,
	})
	if err != nil {
		return nil, err
	}
	return &created.ID, nil
}
