package scorecard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
	"github.com/kpimanager/kpi-backend-go/internal/domain/scorecard"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
)

type ScorecardService interface {
	// GetScorecard builds the monthly KPI view for the employee plus one
	// level of direct reports.
	GetScorecard(ctx context.Context, employeeID string, period time.Time) (scorecard.ScorecardResponse, error)
	// Submit applies a batch of results for one employee and period,
	// atomically: all entries or none.
	Submit(ctx context.Context, req scorecard.SubmitRequest) error
	// ClosePeriod marks the employee's results for the period as closed
	// and returns how many rows were closed. closedBy is the closer's
	// employee id, nil for accounts without a linked employee.
	ClosePeriod(ctx context.Context, req scorecard.ClosePeriodRequest, closedBy *string) (int64, error)
	// CanCapture reports whether the actor may enter results for the
	// target: themselves, or an occupant of a position directly below
	// their own.
	CanCapture(ctx context.Context, actorEmployeeID, targetEmployeeID string) (bool, error)
}

type scorecardServiceImpl struct {
	tx           database.TxRunner
	employeeRepo employee.EmployeeRepository
	positionRepo position.PositionRepository
	kpiRepo      kpi.KpiRepository
	resultRepo   scorecard.ResultRepository
}

func NewScorecardService(
	tx database.TxRunner,
	employeeRepo employee.EmployeeRepository,
	positionRepo position.PositionRepository,
	kpiRepo kpi.KpiRepository,
	resultRepo scorecard.ResultRepository,
) ScorecardService {
	return &scorecardServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		positionRepo: positionRepo,
		kpiRepo:      kpiRepo,
		resultRepo:   resultRepo,
	}
}

func (s *scorecardServiceImpl) GetScorecard(ctx context.Context, employeeID string, period time.Time) (scorecard.ScorecardResponse, error) {
	period = scorecard.NewPeriod(period)

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return scorecard.ScorecardResponse{}, employee.ErrEmployeeNotFound
		}
		return scorecard.ScorecardResponse{}, err
	}

	resp := scorecard.ScorecardResponse{
		Employee: scorecard.EmployeeRef{
			ID:         emp.ID,
			FullName:   emp.FullName,
			PositionID: emp.PositionID,
		},
		Period:       scorecard.FormatPeriod(period),
		OwnKpis:      []scorecard.Row{},
		Subordinates: []scorecard.SubordinateScorecard{},
	}

	// An employee without a position is a displayable state, not an
	// error; there is simply nothing to score.
	if emp.PositionID == nil {
		return resp, nil
	}
	resp.HasPosition = true

	pos, err := s.positionRepo.GetByID(ctx, *emp.PositionID)
	if err != nil {
		return scorecard.ScorecardResponse{}, err
	}
	resp.Employee.PositionName = &pos.Name

	own, err := s.resultRepo.ListForPosition(ctx, pos.ID, emp.ID, period)
	if err != nil {
		return scorecard.ScorecardResponse{}, err
	}
	resp.OwnKpis = classifyRows(own)

	subordinates, err := s.subordinateScorecards(ctx, pos.ID, period)
	if err != nil {
		return scorecard.ScorecardResponse{}, err
	}
	resp.Subordinates = subordinates

	return resp, nil
}

// subordinateScorecards resolves the employees occupying the positions
// one level below the given one and builds each of their KPI lists
// against their own position's assignments.
func (s *scorecardServiceImpl) subordinateScorecards(ctx context.Context, positionID string, period time.Time) ([]scorecard.SubordinateScorecard, error) {
	subPositions, err := s.positionRepo.ListByBossPosition(ctx, positionID)
	if err != nil {
		return nil, err
	}

	// No subordinate positions: skip the membership lookup entirely.
	if len(subPositions) == 0 {
		return []scorecard.SubordinateScorecard{}, nil
	}

	positionNames := make(map[string]string, len(subPositions))
	positionIDs := make([]string, 0, len(subPositions))
	for _, p := range subPositions {
		positionNames[p.ID] = p.Name
		positionIDs = append(positionIDs, p.ID)
	}

	members, err := s.employeeRepo.ListByPositionIDs(ctx, positionIDs)
	if err != nil {
		return nil, err
	}

	subordinates := []scorecard.SubordinateScorecard{}
	for _, member := range members {
		if member.PositionID == nil {
			continue
		}
		rows, err := s.resultRepo.ListForPosition(ctx, *member.PositionID, member.ID, period)
		if err != nil {
			return nil, err
		}
		name := positionNames[*member.PositionID]
		subordinates = append(subordinates, scorecard.SubordinateScorecard{
			Employee: scorecard.EmployeeRef{
				ID:           member.ID,
				FullName:     member.FullName,
				PositionID:   member.PositionID,
				PositionName: &name,
			},
			Kpis: classifyRows(rows),
		})
	}

	return subordinates, nil
}

func (s *scorecardServiceImpl) Submit(ctx context.Context, req scorecard.SubmitRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	period, err := resolvePeriod(req.Period)
	if err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		for _, entry := range req.Entries {
			def, err := s.kpiRepo.GetByID(ctx, entry.KpiID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return kpi.ErrKpiNotFound
				}
				return err
			}

			res := scorecard.Result{
				EmployeeID: req.EmployeeID,
				KpiID:      def.ID,
				Period:     period,
			}
			if def.IsCriterion {
				text := entry.Text
				res.Text = &text
			} else {
				// A malformed number degrades to "no value"; it never
				// rejects the batch.
				if v, err := strconv.ParseFloat(strings.TrimSpace(entry.Value), 64); err == nil {
					res.Value = &v
				}
			}

			if err := s.resultRepo.Upsert(ctx, res); err != nil {
				return fmt.Errorf("failed to save result for kpi %s: %w", def.ID, err)
			}
		}
		return nil
	})
}

func (s *scorecardServiceImpl) ClosePeriod(ctx context.Context, req scorecard.ClosePeriodRequest, closedBy *string) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	period, err := resolvePeriod(req.Period)
	if err != nil {
		return 0, err
	}

	return s.resultRepo.CloseAll(ctx, req.EmployeeID, period, closedBy)
}

func (s *scorecardServiceImpl) CanCapture(ctx context.Context, actorEmployeeID, targetEmployeeID string) (bool, error) {
	if actorEmployeeID == "" {
		return false, nil
	}
	if actorEmployeeID == targetEmployeeID {
		return true, nil
	}

	actor, err := s.employeeRepo.GetByID(ctx, actorEmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	target, err := s.employeeRepo.GetByID(ctx, targetEmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, employee.ErrEmployeeNotFound
		}
		return false, err
	}
	if actor.PositionID == nil || target.PositionID == nil {
		return false, nil
	}

	targetPos, err := s.positionRepo.GetByID(ctx, *target.PositionID)
	if err != nil {
		return false, err
	}

	return targetPos.BossPositionID != nil && *targetPos.BossPositionID == *actor.PositionID, nil
}

func classifyRows(rows []scorecard.Row) []scorecard.Row {
	out := make([]scorecard.Row, len(rows))
	for i, row := range rows {
		row.Classify()
		out[i] = row
	}
	return out
}

// resolvePeriod parses the request period, defaulting to the current
// month when absent.
func resolvePeriod(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return scorecard.CurrentPeriod(), nil
	}
	return scorecard.ParsePeriod(s)
}
