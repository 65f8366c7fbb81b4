package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	"github.com/kpimanager/kpi-backend-go/internal/handler/http/response"
	personnelservice "github.com/kpimanager/kpi-backend-go/internal/service/personnel"
)

type PersonnelHandler interface {
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
}

type PersonnelHandlerImpl struct {
	personnelService personnelservice.PersonnelService
}

func NewPersonnelHandler(personnelService personnelservice.PersonnelService) PersonnelHandler {
	return &PersonnelHandlerImpl{personnelService: personnelService}
}

// CreateEmployee implements PersonnelHandler.
func (h *PersonnelHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var createReq employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.personnelService.CreateEmployee(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", toEmployeeDetail(created))
}

// GetEmployee implements PersonnelHandler.
func (h *PersonnelHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.personnelService.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toEmployeeDetail(e))
}

// ListEmployees implements PersonnelHandler.
func (h *PersonnelHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.ListFilter{
		Query: r.URL.Query().Get("q"),
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	filter.Normalize()

	employees, total, err := h.personnelService.ListEmployees(r.Context(), filter)
	if err != nil {
		slog.Error("ListEmployees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if employees == nil {
		employees = []employee.EmployeeDetail{}
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	response.SuccessWithMeta(w, employees, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// UpdateEmployee implements PersonnelHandler.
func (h *PersonnelHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var updateReq employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "employeeID")

	if err := h.personnelService.UpdateEmployee(r.Context(), updateReq); err != nil {
		slog.Error("UpdateEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", nil)
}

// Import implements PersonnelHandler.
func (h *PersonnelHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	report, err := h.personnelService.Import(r.Context())
	if err != nil {
		slog.Error("Import service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import finished", report)
}

func toEmployeeDetail(e employee.Employee) employee.EmployeeDetail {
	return employee.EmployeeDetail{
		ID:             e.ID,
		EmployeeNumber: e.EmployeeNumber,
		FullName:       e.FullName,
		PositionID:     e.PositionID,
		SupervisorID:   e.SupervisorID,
		Email:          e.Email,
	}
}
