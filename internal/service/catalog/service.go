package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/department"
	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/validator"
)

// CatalogService manages the KPI catalog and the department list it
// hangs off.
type CatalogService interface {
	CreateKpi(ctx context.Context, req kpi.CreateKpiRequest) (kpi.Definition, error)
	GetKpi(ctx context.Context, id string) (kpi.Definition, error)
	// SearchKpis matches id, description or department name; an empty
	// query lists the whole catalog.
	SearchKpis(ctx context.Context, query string) ([]kpi.DefinitionDetail, error)
	ListKpiRefs(ctx context.Context) ([]kpi.Ref, error)
	UpdateKpi(ctx context.Context, req kpi.UpdateKpiRequest) error
	CreateDepartment(ctx context.Context, name string) (department.Department, error)
	ListDepartments(ctx context.Context) ([]department.Department, error)
}

type catalogServiceImpl struct {
	kpiRepo        kpi.KpiRepository
	departmentRepo department.DepartmentRepository
}

func NewCatalogService(kpiRepo kpi.KpiRepository, departmentRepo department.DepartmentRepository) CatalogService {
	return &catalogServiceImpl{
		kpiRepo:        kpiRepo,
		departmentRepo: departmentRepo,
	}
}

func (s *catalogServiceImpl) CreateKpi(ctx context.Context, req kpi.CreateKpiRequest) (kpi.Definition, error) {
	if err := req.Validate(); err != nil {
		return kpi.Definition{}, err
	}

	return s.kpiRepo.Create(ctx, kpi.Definition{
		Description:  strings.TrimSpace(req.Description),
		Unit:         req.Unit,
		Target:       req.Target,
		DepartmentID: req.DepartmentID,
		Red:          req.Red,
		Yellow:       req.Yellow,
		Green:        req.Green,
		IsCriterion:  req.IsCriterion,
	})
}

func (s *catalogServiceImpl) GetKpi(ctx context.Context, id string) (kpi.Definition, error) {
	def, err := s.kpiRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpi.Definition{}, kpi.ErrKpiNotFound
		}
		return kpi.Definition{}, err
	}
	return def, nil
}

func (s *catalogServiceImpl) SearchKpis(ctx context.Context, query string) ([]kpi.DefinitionDetail, error) {
	return s.kpiRepo.Search(ctx, strings.TrimSpace(query))
}

func (s *catalogServiceImpl) ListKpiRefs(ctx context.Context) ([]kpi.Ref, error) {
	return s.kpiRepo.ListRefs(ctx)
}

func (s *catalogServiceImpl) UpdateKpi(ctx context.Context, req kpi.UpdateKpiRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	req.Description = strings.TrimSpace(req.Description)
	return s.kpiRepo.Update(ctx, req)
}

func (s *catalogServiceImpl) CreateDepartment(ctx context.Context, name string) (department.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return department.Department{}, validator.ValidationErrors{{
			Field:   "name",
			Message: "name is required",
		}}
	}

	if _, err := s.departmentRepo.GetByName(ctx, name); err == nil {
		return department.Department{}, department.ErrDepartmentExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return department.Department{}, err
	}

	return s.departmentRepo.Create(ctx, name)
}

func (s *catalogServiceImpl) ListDepartments(ctx context.Context) ([]department.Department, error) {
	return s.departmentRepo.List(ctx)
}
