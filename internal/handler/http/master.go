package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/domain/position"
	"github.com/kpimanager/kpi-backend-go/internal/handler/http/response"
	masterservice "github.com/kpimanager/kpi-backend-go/internal/service/master"
)

type MasterHandler interface {
	CreatePosition(w http.ResponseWriter, r *http.Request)
	GetPosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	AssignKpis(w http.ResponseWriter, r *http.Request)
	GetAssignedKpis(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	masterService masterservice.MasterService
}

func NewMasterHandler(masterService masterservice.MasterService) MasterHandler {
	return &MasterHandlerImpl{masterService: masterService}
}

// CreatePosition implements MasterHandler.
func (h *MasterHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var createReq position.CreatePositionRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreatePosition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	pos, err := h.masterService.CreatePosition(r.Context(), createReq)
	if err != nil {
		slog.Error("CreatePosition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created successfully", toPositionResponse(pos))
}

// GetPosition implements MasterHandler.
func (h *MasterHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	pos, err := h.masterService.GetPosition(r.Context(), chi.URLParam(r, "positionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toPositionResponse(pos))
}

// ListPositions implements MasterHandler.
func (h *MasterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.masterService.ListPositions(r.Context())
	if err != nil {
		slog.Error("ListPositions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if positions == nil {
		positions = []position.PositionDetail{}
	}
	response.Success(w, positions)
}

// UpdatePosition implements MasterHandler.
func (h *MasterHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var updateReq position.UpdatePositionRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdatePosition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "positionID")

	if err := h.masterService.UpdatePosition(r.Context(), updateReq); err != nil {
		slog.Error("UpdatePosition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position updated successfully", nil)
}

// AssignKpis implements MasterHandler.
func (h *MasterHandlerImpl) AssignKpis(w http.ResponseWriter, r *http.Request) {
	var assignReq kpi.AssignKpisRequest

	if err := json.NewDecoder(r.Body).Decode(&assignReq); err != nil {
		slog.Error("AssignKpis decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	positionID := chi.URLParam(r, "positionID")
	if err := h.masterService.AssignKpis(r.Context(), positionID, assignReq); err != nil {
		slog.Error("AssignKpis service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPIs assigned successfully", nil)
}

// GetAssignedKpis implements MasterHandler.
func (h *MasterHandlerImpl) GetAssignedKpis(w http.ResponseWriter, r *http.Request) {
	ids, err := h.masterService.AssignedKpiIDs(r.Context(), chi.URLParam(r, "positionID"))
	if err != nil {
		slog.Error("GetAssignedKpis service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, ids)
}

// ListAssignments implements MasterHandler.
func (h *MasterHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.masterService.ListAssignments(r.Context())
	if err != nil {
		slog.Error("ListAssignments service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, assignments)
}

func toPositionResponse(p position.Position) position.PositionResponse {
	return position.PositionResponse{
		ID:             p.ID,
		Name:           p.Name,
		DepartmentID:   p.DepartmentID,
		BossPositionID: p.BossPositionID,
	}
}
