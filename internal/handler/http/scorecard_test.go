package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kpimanager/kpi-backend-go/internal/domain/auth"
	"github.com/kpimanager/kpi-backend-go/internal/domain/scorecard"
	"github.com/kpimanager/kpi-backend-go/internal/domain/user"
	scorecardservice "github.com/kpimanager/kpi-backend-go/internal/service/scorecard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScorecardService struct {
	scorecardservice.ScorecardService
	closedBy    *string
	closeCalled bool
}

func (f *fakeScorecardService) ClosePeriod(ctx context.Context, req scorecard.ClosePeriodRequest, closedBy *string) (int64, error) {
	f.closeCalled = true
	f.closedBy = closedBy
	return 0, nil
}

func closePeriodRequest(principal auth.Principal) *http.Request {
	body := strings.NewReader(`{"employee_id":"e1","period":"2024-03"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scorecard/close", body)
	return req.WithContext(auth.WithPrincipal(req.Context(), principal))
}

// The closed_by column references employees, so the handler must hand
// the service the caller's employee id, never the user account id.
func TestClosePeriodPassesCloserEmployeeID(t *testing.T) {
	svc := &fakeScorecardService{}
	handler := NewScorecardHandler(svc)

	rec := httptest.NewRecorder()
	handler.ClosePeriod(rec, closePeriodRequest(auth.Principal{
		UserID:     "user-1",
		EmployeeID: "emp-1",
		Role:       user.RoleAdmin,
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.closeCalled)
	require.NotNil(t, svc.closedBy)
	assert.Equal(t, "emp-1", *svc.closedBy)
}

func TestClosePeriodWithoutLinkedEmployeeClosesAnonymously(t *testing.T) {
	svc := &fakeScorecardService{}
	handler := NewScorecardHandler(svc)

	rec := httptest.NewRecorder()
	handler.ClosePeriod(rec, closePeriodRequest(auth.Principal{
		UserID: "user-1",
		Role:   user.RoleAdmin,
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.closeCalled)
	assert.Nil(t, svc.closedBy)
}
