package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kpimanager/kpi-backend-go/internal/domain/auth"
	"github.com/kpimanager/kpi-backend-go/internal/domain/scorecard"
	"github.com/kpimanager/kpi-backend-go/internal/handler/http/response"
	scorecardservice "github.com/kpimanager/kpi-backend-go/internal/service/scorecard"
)

type ScorecardHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	ClosePeriod(w http.ResponseWriter, r *http.Request)
}

type ScorecardHandlerImpl struct {
	scorecardService scorecardservice.ScorecardService
}

func NewScorecardHandler(scorecardService scorecardservice.ScorecardService) ScorecardHandler {
	return &ScorecardHandlerImpl{scorecardService: scorecardService}
}

// Get implements ScorecardHandler. Without an employee_id query
// parameter it returns the caller's own scorecard.
func (h *ScorecardHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := auth.PrincipalFromContext(r.Context())

	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		if principal.EmployeeID == "" {
			response.HandleError(w, auth.ErrNoLinkedEmployee)
			return
		}
		employeeID = principal.EmployeeID
	}

	if employeeID != principal.EmployeeID && !principal.IsAdmin() {
		ok, err := h.scorecardService.CanCapture(r.Context(), principal.EmployeeID, employeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !ok {
			response.Forbidden(w, "You can only view your own scorecard or a direct report's")
			return
		}
	}

	period, ok := periodParam(w, r)
	if !ok {
		return
	}

	card, err := h.scorecardService.GetScorecard(r.Context(), employeeID, period)
	if err != nil {
		slog.Error("Get scorecard service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, card)
}

// Submit implements ScorecardHandler.
func (h *ScorecardHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var submitReq scorecard.SubmitRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := submitReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	principal, _ := auth.PrincipalFromContext(r.Context())
	if !principal.IsAdmin() {
		ok, err := h.scorecardService.CanCapture(r.Context(), principal.EmployeeID, submitReq.EmployeeID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		if !ok {
			response.Forbidden(w, "You can only capture results for yourself or a direct report")
			return
		}
	}

	if err := h.scorecardService.Submit(r.Context(), submitReq); err != nil {
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Results saved successfully", nil)
}

// ClosePeriod implements ScorecardHandler.
func (h *ScorecardHandlerImpl) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	var closeReq scorecard.ClosePeriodRequest

	if err := json.NewDecoder(r.Body).Decode(&closeReq); err != nil {
		slog.Error("ClosePeriod decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// closed_by is employee-keyed; an account without a linked employee
	// closes anonymously.
	principal, _ := auth.PrincipalFromContext(r.Context())
	var closedBy *string
	if principal.EmployeeID != "" {
		closedBy = &principal.EmployeeID
	}

	closed, err := h.scorecardService.ClosePeriod(r.Context(), closeReq, closedBy)
	if err != nil {
		slog.Error("ClosePeriod service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Period closed successfully", map[string]int64{"closed": closed})
}

// periodParam reads the optional ?period=YYYY-MM query parameter,
// defaulting to the current month. On a malformed value it writes the
// error response and reports false.
func periodParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return scorecard.CurrentPeriod(), true
	}

	period, err := scorecard.ParsePeriod(raw)
	if err != nil {
		response.BadRequest(w, "period must be in YYYY-MM format", nil)
		return time.Time{}, false
	}
	return period, true
}
