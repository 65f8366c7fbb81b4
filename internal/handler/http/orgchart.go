package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kpimanager/kpi-backend-go/internal/domain/orgchart"
	"github.com/kpimanager/kpi-backend-go/internal/handler/http/response"
	orgchartservice "github.com/kpimanager/kpi-backend-go/internal/service/orgchart"
)

type OrgChartHandler interface {
	GetChart(w http.ResponseWriter, r *http.Request)
	MoveEmployee(w http.ResponseWriter, r *http.Request)
}

type OrgChartHandlerImpl struct {
	orgChartService orgchartservice.OrgChartService
}

func NewOrgChartHandler(orgChartService orgchartservice.OrgChartService) OrgChartHandler {
	return &OrgChartHandlerImpl{orgChartService: orgChartService}
}

// GetChart implements OrgChartHandler.
func (h *OrgChartHandlerImpl) GetChart(w http.ResponseWriter, r *http.Request) {
	forest, err := h.orgChartService.GetChart(r.Context())
	if err != nil {
		slog.Error("GetChart service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, forest)
}

// MoveEmployee implements OrgChartHandler.
func (h *OrgChartHandlerImpl) MoveEmployee(w http.ResponseWriter, r *http.Request) {
	var moveReq orgchart.MoveRequest

	if err := json.NewDecoder(r.Body).Decode(&moveReq); err != nil {
		slog.Error("MoveEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.orgChartService.MoveEmployee(r.Context(), moveReq); err != nil {
		slog.Error("MoveEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee moved successfully", nil)
}
