package master

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

// MasterService manages positions and the position-to-KPI assignment
// matrix.
type MasterService interface {
	CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.Position, error)
	GetPosition(ctx context.Context, id string) (position.Position, error)
	ListPositions(ctx context.Context) ([]position.PositionDetail, error)
	UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) error
	// AssignKpis replaces the position's KPI set atomically.
	AssignKpis(ctx context.Context, positionID string, req kpi.AssignKpisRequest) error
	// ListAssignments returns kpi ids grouped by position id.
	ListAssignments(ctx context.Context) (map[string][]string, error)
	// AssignedKpiIDs returns the KPI ids currently assigned to one
	// position.
	AssignedKpiIDs(ctx context.Context, positionID string) ([]string, error)
}

type masterServiceImpl struct {
	tx             database.TxRunner
	positionRepo   position.PositionRepository
	kpiRepo        kpi.KpiRepository
	assignmentRepo kpi.AssignmentRepository
}

func NewMasterService(
	tx database.TxRunner,
	positionRepo position.PositionRepository,
	kpiRepo kpi.KpiRepository,
	assignmentRepo kpi.AssignmentRepository,
) MasterService {
	return &masterServiceImpl{
		tx:             tx,
		positionRepo:   positionRepo,
		kpiRepo:        kpiRepo,
		assignmentRepo: assignmentRepo,
	}
}

func (s *masterServiceImpl) CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.Position, error) {
	if err := req.Validate(); err != nil {
		return position.Position{}, err
	}

	return s.positionRepo.Create(ctx, position.Position{
		Name:           strings.TrimSpace(req.Name),
		DepartmentID:   req.DepartmentID,
		BossPositionID: req.BossPositionID,
	})
}

func (s *masterServiceImpl) GetPosition(ctx context.Context, id string) (position.Position, error) {
	pos, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return position.Position{}, position.ErrPositionNotFound
		}
		return position.Position{}, err
	}
	return pos, nil
}

func (s *masterServiceImpl) ListPositions(ctx context.Context) ([]position.PositionDetail, error) {
	return s.positionRepo.List(ctx)
}

func (s *masterServiceImpl) UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	req.Name = strings.TrimSpace(req.Name)
	return s.positionRepo.Update(ctx, req)
}

func (s *masterServiceImpl) AssignKpis(ctx context.Context, positionID string, req kpi.AssignKpisRequest) error {
	if _, err := s.GetPosition(ctx, positionID); err != nil {
		return err
	}

	// Verify the whole set before mutating anything.
	for _, kpiID := range req.KpiIDs {
		if _, err := s.kpiRepo.GetByID(ctx, kpiID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return kpi.ErrKpiNotFound
			}
			return err
		}
	}

	// Delete-then-insert inside one transaction: the assignment set is
	// replaced, never merged.
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.assignmentRepo.DeleteByPosition(ctx, positionID); err != nil {
			return err
		}
		for _, kpiID := range req.KpiIDs {
			if err := s.assignmentRepo.Add(ctx, positionID, kpiID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *masterServiceImpl) ListAssignments(ctx context.Context) (map[string][]string, error) {
	return s.assignmentRepo.ListAll(ctx)
}

func (s *masterServiceImpl) AssignedKpiIDs(ctx context.Context, positionID string) ([]string, error) {
	assignments, err := s.assignmentRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := assignments[positionID]
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
