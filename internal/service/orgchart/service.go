package orgchart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/domain/orgchart"
	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

type OrgChartService interface {
	// GetChart builds the jsTree forest of positions and their occupants.
	GetChart(ctx context.Context) ([]*orgchart.Node, error)
	// MoveEmployee reassigns an employee to a position and repoints the
	// supervisor to an occupant of the position's boss position.
	MoveEmployee(ctx context.Context, req orgchart.MoveRequest) error
}

type orgChartServiceImpl struct {
	tx           database.TxRunner
	employeeRepo employee.EmployeeRepository
	positionRepo position.PositionRepository
}

func NewOrgChartService(
	tx database.TxRunner,
	employeeRepo employee.EmployeeRepository,
	positionRepo position.PositionRepository,
) OrgChartService {
	return &orgChartServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		positionRepo: positionRepo,
	}
}

func (s *orgChartServiceImpl) GetChart(ctx context.Context) ([]*orgchart.Node, error) {
	positions, err := s.positionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return orgchart.BuildForest(positions, employees), nil
}

func (s *orgChartServiceImpl) MoveEmployee(ctx context.Context, req orgchart.MoveRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	pos, err := s.positionRepo.GetByID(ctx, req.PositionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.ErrPositionNotFound
		}
		return err
	}

	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.employeeRepo.UpdatePosition(ctx, req.EmployeeID, pos.ID); err != nil {
			return err
		}

		supervisorID, err := s.resolveSupervisor(ctx, pos, req.EmployeeID)
		if err != nil {
			return err
		}
		return s.employeeRepo.UpdateSupervisor(ctx, req.EmployeeID, supervisorID)
	})
}

// resolveSupervisor picks an occupant of the boss position. The choice
// among several occupants is arbitrary; no occupant, or no boss
// position, clears the supervisor.
func (s *orgChartServiceImpl) resolveSupervisor(ctx context.Context, pos position.Position, employeeID string) (*string, error) {
	if pos.BossPositionID == nil {
		return nil, nil
	}

	boss, err := s.employeeRepo.FindAnyByPosition(ctx, *pos.BossPositionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if boss.ID == employeeID {
		return nil, nil
	}
	return &boss.ID, nil
}
