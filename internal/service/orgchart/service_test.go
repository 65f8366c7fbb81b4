package orgchart

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/domain/orgchart"
	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	all        []employee.Employee
	byPosition map[string]employee.Employee

	positionUpdates   map[string]string
	supervisorUpdates map[string]*string
}

func (f *fakeEmployeeRepo) ListAll(ctx context.Context) ([]employee.Employee, error) {
	return f.all, nil
}

func (f *fakeEmployeeRepo) FindAnyByPosition(ctx context.Context, positionID string) (employee.Employee, error) {
	e, ok := f.byPosition[positionID]
	if !ok {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return e, nil
}

func (f *fakeEmployeeRepo) UpdatePosition(ctx context.Context, id string, positionID string) error {
	if f.positionUpdates == nil {
		f.positionUpdates = make(map[string]string)
	}
	f.positionUpdates[id] = positionID
	return nil
}

func (f *fakeEmployeeRepo) UpdateSupervisor(ctx context.Context, id string, supervisorID *string) error {
	if f.supervisorUpdates == nil {
		f.supervisorUpdates = make(map[string]*string)
	}
	f.supervisorUpdates[id] = supervisorID
	return nil
}

type fakePositionRepo struct {
	position.PositionRepository
	all []position.Position
}

func (f *fakePositionRepo) ListAll(ctx context.Context) ([]position.Position, error) {
	return f.all, nil
}

func (f *fakePositionRepo) GetByID(ctx context.Context, id string) (position.Position, error) {
	for _, p := range f.all {
		if p.ID == id {
			return p, nil
		}
	}
	return position.Position{}, pgx.ErrNoRows
}

func ptr[T any](v T) *T { return &v }

func TestGetChartNestsEmployeesUnderPositions(t *testing.T) {
	pos := &fakePositionRepo{all: []position.Position{
		{ID: "p1", Name: "Director"},
		{ID: "p2", Name: "Gerente", BossPositionID: ptr("p1")},
	}}
	emp := &fakeEmployeeRepo{all: []employee.Employee{
		{ID: "e1", FullName: "Ana", PositionID: ptr("p2")},
	}}
	svc := NewOrgChartService(fakeTxRunner{}, emp, pos)

	forest, err := svc.GetChart(context.Background())
	require.NoError(t, err)

	require.Len(t, forest, 1)
	root := forest[0]
	assert.Equal(t, "puesto_p1", root.ID)
	require.Len(t, root.Children, 1)
	gerente := root.Children[0]
	assert.Equal(t, "puesto_p2", gerente.ID)
	require.Len(t, gerente.Children, 1)
	assert.Equal(t, "empleado_e1", gerente.Children[0].ID)
	assert.Equal(t, "e1", gerente.Children[0].Attrs["data-employee-id"])
}

func TestMoveEmployeeAssignsBossOccupantAsSupervisor(t *testing.T) {
	pos := &fakePositionRepo{all: []position.Position{
		{ID: "p1", Name: "Gerente"},
		{ID: "p2", Name: "Vendedor", BossPositionID: ptr("p1")},
	}}
	emp := &fakeEmployeeRepo{byPosition: map[string]employee.Employee{
		"p1": {ID: "boss", FullName: "Ana"},
	}}
	svc := NewOrgChartService(fakeTxRunner{}, emp, pos)

	err := svc.MoveEmployee(context.Background(), orgchart.MoveRequest{
		EmployeeID: "e1",
		PositionID: "p2",
	})
	require.NoError(t, err)

	assert.Equal(t, "p2", emp.positionUpdates["e1"])
	require.Contains(t, emp.supervisorUpdates, "e1")
	require.NotNil(t, emp.supervisorUpdates["e1"])
	assert.Equal(t, "boss", *emp.supervisorUpdates["e1"])
}

func TestMoveEmployeeClearsSupervisorWhenBossPositionEmpty(t *testing.T) {
	pos := &fakePositionRepo{all: []position.Position{
		{ID: "p1", Name: "Gerente"},
		{ID: "p2", Name: "Vendedor", BossPositionID: ptr("p1")},
	}}
	emp := &fakeEmployeeRepo{}
	svc := NewOrgChartService(fakeTxRunner{}, emp, pos)

	err := svc.MoveEmployee(context.Background(), orgchart.MoveRequest{
		EmployeeID: "e1",
		PositionID: "p2",
	})
	require.NoError(t, err)

	require.Contains(t, emp.supervisorUpdates, "e1")
	assert.Nil(t, emp.supervisorUpdates["e1"])
}

func TestMoveEmployeeToRootPositionClearsSupervisor(t *testing.T) {
	pos := &fakePositionRepo{all: []position.Position{
		{ID: "p1", Name: "Director"},
	}}
	emp := &fakeEmployeeRepo{}
	svc := NewOrgChartService(fakeTxRunner{}, emp, pos)

	err := svc.MoveEmployee(context.Background(), orgchart.MoveRequest{
		EmployeeID: "e1",
		PositionID: "p1",
	})
	require.NoError(t, err)

	require.Contains(t, emp.supervisorUpdates, "e1")
	assert.Nil(t, emp.supervisorUpdates["e1"])
}

func TestMoveEmployeeUnknownPosition(t *testing.T) {
	svc := NewOrgChartService(fakeTxRunner{}, &fakeEmployeeRepo{}, &fakePositionRepo{})

	err := svc.MoveEmployee(context.Background(), orgchart.MoveRequest{
		EmployeeID: "e1",
		PositionID: "ghost",
	})
	assert.ErrorIs(t, err, position.ErrPositionNotFound)
}

func TestMoveEmployeeValidation(t *testing.T) {
	svc := NewOrgChartService(fakeTxRunner{}, &fakeEmployeeRepo{}, &fakePositionRepo{})

	err := svc.MoveEmployee(context.Background(), orgchart.MoveRequest{})
	assert.Error(t, err)
}
