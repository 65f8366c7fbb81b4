package scorecard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
	"github.com/kpimanager/kpi-backend-go/internal/domain/scorecard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// The fakes embed the repository interface so only the methods a test
// exercises need an implementation; an unexpected call panics.

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees       map[string]employee.Employee
	byPosition      map[string][]employee.Employee
	byPositionCalls int
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return e, nil
}

func (f *fakeEmployeeRepo) ListByPositionIDs(ctx context.Context, positionIDs []string) ([]employee.Employee, error) {
	f.byPositionCalls++
	var out []employee.Employee
	for _, id := range positionIDs {
		out = append(out, f.byPosition[id]...)
	}
	return out, nil
}

type fakePositionRepo struct {
	position.PositionRepository
	positions map[string]position.Position
	children  map[string][]position.Position
}

func (f *fakePositionRepo) GetByID(ctx context.Context, id string) (position.Position, error) {
	p, ok := f.positions[id]
	if !ok {
		return position.Position{}, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakePositionRepo) ListByBossPosition(ctx context.Context, bossPositionID string) ([]position.Position, error) {
	return f.children[bossPositionID], nil
}

type fakeKpiRepo struct {
	kpi.KpiRepository
	defs map[string]kpi.Definition
}

func (f *fakeKpiRepo) GetByID(ctx context.Context, id string) (kpi.Definition, error) {
	d, ok := f.defs[id]
	if !ok {
		return kpi.Definition{}, pgx.ErrNoRows
	}
	return d, nil
}

type resultKey struct {
	EmployeeID string
	KpiID      string
	Period     time.Time
}

type fakeResultRepo struct {
	scorecard.ResultRepository
	rows     map[string][]scorecard.Row
	stored   map[resultKey]scorecard.Result
	closed   int64
	closedBy *string
	upserts  int
}

func (f *fakeResultRepo) ListForPosition(ctx context.Context, positionID, employeeID string, period time.Time) ([]scorecard.Row, error) {
	return f.rows[positionID+"/"+employeeID], nil
}

func (f *fakeResultRepo) Upsert(ctx context.Context, res scorecard.Result) error {
	if f.stored == nil {
		f.stored = make(map[resultKey]scorecard.Result)
	}
	f.upserts++
	f.stored[resultKey{res.EmployeeID, res.KpiID, res.Period}] = res
	return nil
}

func (f *fakeResultRepo) CloseAll(ctx context.Context, employeeID string, period time.Time, closedBy *string) (int64, error) {
	f.closedBy = closedBy
	return f.closed, nil
}

func ptr[T any](v T) *T { return &v }

func metricRange(min, max float64) kpi.Range {
	return kpi.Range{Min: &min, Max: &max}
}

func newService(emp *fakeEmployeeRepo, pos *fakePositionRepo, kpis *fakeKpiRepo, results *fakeResultRepo) ScorecardService {
	return NewScorecardService(fakeTxRunner{}, emp, pos, kpis, results)
}

func TestGetScorecardWithoutPosition(t *testing.T) {
	emp := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {ID: "e1", FullName: "Ana Lopez"},
	}}
	svc := newService(emp, &fakePositionRepo{}, &fakeKpiRepo{}, &fakeResultRepo{})

	resp, err := svc.GetScorecard(context.Background(), "e1", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.False(t, resp.HasPosition)
	assert.Equal(t, "2024-03", resp.Period)
	assert.Empty(t, resp.OwnKpis)
	assert.Empty(t, resp.Subordinates)
	assert.NotNil(t, resp.OwnKpis)
	assert.NotNil(t, resp.Subordinates)
}

func TestGetScorecardUnknownEmployee(t *testing.T) {
	svc := newService(&fakeEmployeeRepo{}, &fakePositionRepo{}, &fakeKpiRepo{}, &fakeResultRepo{})

	_, err := svc.GetScorecard(context.Background(), "missing", time.Now())
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetScorecardClassifiesOwnRows(t *testing.T) {
	emp := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {ID: "e1", FullName: "Ana Lopez", PositionID: ptr("p1")},
	}}
	pos := &fakePositionRepo{positions: map[string]position.Position{
		"p1": {ID: "p1", Name: "Gerente de Ventas"},
	}}
	results := &fakeResultRepo{rows: map[string][]scorecard.Row{
		"p1/e1": {
			{
				KpiID: "k1", Description: "Ventas mensuales",
				Green:  metricRange(80, 100),
				Yellow: metricRange(50, 79.99),
				Red:    metricRange(0, 49.99),
				Value:  ptr(85.0),
			},
			{KpiID: "k2", Description: "Clima laboral", IsCriterion: true, Text: ptr("bueno")},
		},
	}}
	svc := newService(emp, pos, &fakeKpiRepo{}, results)

	resp, err := svc.GetScorecard(context.Background(), "e1", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, resp.HasPosition)
	require.Len(t, resp.OwnKpis, 2)
	assert.Equal(t, kpi.StatusGreen, resp.OwnKpis[0].Status)
	assert.Equal(t, kpi.StatusNone, resp.OwnKpis[1].Status)
	require.NotNil(t, resp.Employee.PositionName)
	assert.Equal(t, "Gerente de Ventas", *resp.Employee.PositionName)
}

func TestGetScorecardSubordinates(t *testing.T) {
	emp := &fakeEmployeeRepo{
		employees: map[string]employee.Employee{
			"boss": {ID: "boss", FullName: "Ana Lopez", PositionID: ptr("p1")},
		},
		byPosition: map[string][]employee.Employee{
			"p2": {{ID: "sub", FullName: "Juan Perez", PositionID: ptr("p2")}},
		},
	}
	pos := &fakePositionRepo{
		positions: map[string]position.Position{
			"p1": {ID: "p1", Name: "Gerente"},
		},
		children: map[string][]position.Position{
			"p1": {{ID: "p2", Name: "Vendedor", BossPositionID: ptr("p1")}},
		},
	}
	results := &fakeResultRepo{rows: map[string][]scorecard.Row{
		"p2/sub": {
			{KpiID: "k1", Description: "Cierres", Green: metricRange(10, 20), Value: ptr(12.0)},
		},
	}}
	svc := newService(emp, pos, &fakeKpiRepo{}, results)

	resp, err := svc.GetScorecard(context.Background(), "boss", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, resp.Subordinates, 1)
	sub := resp.Subordinates[0]
	assert.Equal(t, "Juan Perez", sub.Employee.FullName)
	require.NotNil(t, sub.Employee.PositionName)
	assert.Equal(t, "Vendedor", *sub.Employee.PositionName)
	require.Len(t, sub.Kpis, 1)
	assert.Equal(t, kpi.StatusGreen, sub.Kpis[0].Status)
}

func TestGetScorecardSkipsMemberLookupWithoutSubPositions(t *testing.T) {
	emp := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"e1": {ID: "e1", FullName: "Ana Lopez", PositionID: ptr("p1")},
	}}
	pos := &fakePositionRepo{positions: map[string]position.Position{
		"p1": {ID: "p1", Name: "Analista"},
	}}
	svc := newService(emp, pos, &fakeKpiRepo{}, &fakeResultRepo{})

	resp, err := svc.GetScorecard(context.Background(), "e1", time.Now())
	require.NoError(t, err)

	assert.Empty(t, resp.Subordinates)
	assert.Zero(t, emp.byPositionCalls)
}

func TestSubmitStoresMetricAndCriterion(t *testing.T) {
	kpis := &fakeKpiRepo{defs: map[string]kpi.Definition{
		"k1": {ID: "k1", Description: "Ventas"},
		"k2": {ID: "k2", Description: "Clima", IsCriterion: true},
	}}
	results := &fakeResultRepo{}
	svc := newService(&fakeEmployeeRepo{}, &fakePositionRepo{}, kpis, results)

	err := svc.Submit(context.Background(), scorecard.SubmitRequest{
		EmployeeID: "e1",
		Period:     "2024-03",
		Entries: []scorecard.SubmitEntry{
			{KpiID: "k1", Value: " 42.5 "},
			{KpiID: "k2", Text: "excelente"},
		},
	})
	require.NoError(t, err)

	period := scorecard.NewPeriod(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	metric := results.stored[resultKey{"e1", "k1", period}]
	require.NotNil(t, metric.Value)
	assert.Equal(t, 42.5, *metric.Value)
	assert.Nil(t, metric.Text)

	criterion := results.stored[resultKey{"e1", "k2", period}]
	require.NotNil(t, criterion.Text)
	assert.Equal(t, "excelente", *criterion.Text)
	assert.Nil(t, criterion.Value)
}

func TestSubmitMalformedNumberDegradesToNil(t *testing.T) {
	kpis := &fakeKpiRepo{defs: map[string]kpi.Definition{
		"k1": {ID: "k1", Description: "Ventas"},
	}}
	results := &fakeResultRepo{}
	svc := newService(&fakeEmployeeRepo{}, &fakePositionRepo{}, kpis, results)

	err := svc.Submit(context.Background(), scorecard.SubmitRequest{
		EmployeeID: "e1",
		Period:     "2024-03",
		Entries:    []scorecard.SubmitEntry{{KpiID: "k1", Value: "not a number"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, results.upserts)
	for _, res := range results.stored {
		assert.Nil(t, res.Value)
	}
}

func TestSubmitUnknownKpiFailsBatch(t *testing.T) {
	kpis := &fakeKpiRepo{defs: map[string]kpi.Definition{}}
	results := &fakeResultRepo{}
	svc := newService(&fakeEmployeeRepo{}, &fakePositionRepo{}, kpis, results)

	err := svc.Submit(context.Background(), scorecard.SubmitRequest{
		EmployeeID: "e1",
		Period:     "2024-03",
		Entries:    []scorecard.SubmitEntry{{KpiID: "ghost", Value: "1"}},
	})
	assert.ErrorIs(t, err, kpi.ErrKpiNotFound)
	assert.Zero(t, results.upserts)
}

func TestSubmitResubmissionOverwrites(t *testing.T) {
	kpis := &fakeKpiRepo{defs: map[string]kpi.Definition{
		"k1": {ID: "k1", Description: "Ventas"},
	}}
	results := &fakeResultRepo{}
	svc := newService(&fakeEmployeeRepo{}, &fakePositionRepo{}, kpis, results)

	submit := func(value string) error {
		return svc.Submit(context.Background(), scorecard.SubmitRequest{
			EmployeeID: "e1",
			Period:     "2024-03",
			Entries:    []scorecard.SubmitEntry{{KpiID: "k1", Value: value}},
		})
	}
	require.NoError(t, submit("10"))
	require.NoError(t, submit("20"))

	require.Len(t, results.stored, 1)
	period := scorecard.NewPeriod(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	res := results.stored[resultKey{"e1", "k1", period}]
	require.NotNil(t, res.Value)
	assert.Equal(t, 20.0, *res.Value)
}

func TestSubmitValidation(t *testing.T) {
	svc := newService(&fakeEmployeeRepo{}, &fakePositionRepo{}, &fakeKpiRepo{}, &fakeResultRepo{})

	err := svc.Submit(context.Background(), scorecard.SubmitRequest{Period: "03/2024"})
	require.Error(t, err)

	var errs interface{ ToMap() map[string]string }
	require.True(t, errors.As(err, &errs))
	fields := errs.ToMap()
	assert.Contains(t, fields, "employee_id")
	assert.Contains(t, fields, "period")
}

func TestCanCapture(t *testing.T) {
	emp := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"boss":     {ID: "boss", PositionID: ptr("p1")},
		"sub":      {ID: "sub", PositionID: ptr("p2")},
		"stranger": {ID: "stranger", PositionID: ptr("p3")},
	}}
	pos := &fakePositionRepo{positions: map[string]position.Position{
		"p1": {ID: "p1"},
		"p2": {ID: "p2", BossPositionID: ptr("p1")},
		"p3": {ID: "p3"},
	}}
	svc := newService(emp, pos, &fakeKpiRepo{}, &fakeResultRepo{})

	tests := []struct {
		name   string
		actor  string
		target string
		want   bool
	}{
		{"self", "sub", "sub", true},
		{"direct report", "boss", "sub", true},
		{"unrelated employee", "boss", "stranger", false},
		{"reverse direction", "sub", "boss", false},
		{"no actor", "", "sub", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CanCapture(context.Background(), tt.actor, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClosePeriodReturnsCount(t *testing.T) {
	results := &fakeResultRepo{closed: 4}
	svc := newService(&fakeEmployeeRepo{}, &fakePositionRepo{}, &fakeKpiRepo{}, results)

	count, err := svc.ClosePeriod(context.Background(), scorecard.ClosePeriodRequest{
		EmployeeID: "e1",
		Period:     "2024-03",
	}, ptr("closer-emp"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestClosePeriodRecordsCloserEmployee(t *testing.T) {
	results := &fakeResultRepo{}
	svc := newService(&fakeEmployeeRepo{}, &fakePositionRepo{}, &fakeKpiRepo{}, results)

	req := scorecard.ClosePeriodRequest{EmployeeID: "e1", Period: "2024-03"}

	_, err := svc.ClosePeriod(context.Background(), req, ptr("closer-emp"))
	require.NoError(t, err)
	require.NotNil(t, results.closedBy)
	assert.Equal(t, "closer-emp", *results.closedBy)

	_, err = svc.ClosePeriod(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Nil(t, results.closedBy)
}
