package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kpimanager/kpi-backend-go/internal/domain/department"
	"github.com/kpimanager/kpi-backend-go/internal/domain/kpi"
	"github.com/kpimanager/kpi-backend-go/internal/handler/http/response"
	catalogservice "github.com/kpimanager/kpi-backend-go/internal/service/catalog"
)

type CatalogHandler interface {
	CreateKpi(w http.ResponseWriter, r *http.Request)
	GetKpi(w http.ResponseWriter, r *http.Request)
	SearchKpis(w http.ResponseWriter, r *http.Request)
	ListKpiRefs(w http.ResponseWriter, r *http.Request)
	UpdateKpi(w http.ResponseWriter, r *http.Request)
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
}

type CatalogHandlerImpl struct {
	catalogService catalogservice.CatalogService
}

func NewCatalogHandler(catalogService catalogservice.CatalogService) CatalogHandler {
	return &CatalogHandlerImpl{catalogService: catalogService}
}

// CreateKpi implements CatalogHandler.
func (h *CatalogHandlerImpl) CreateKpi(w http.ResponseWriter, r *http.Request) {
	var createReq kpi.CreateKpiRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateKpi decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	def, err := h.catalogService.CreateKpi(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateKpi service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "KPI created successfully", toKpiDetail(def))
}

// GetKpi implements CatalogHandler.
func (h *CatalogHandlerImpl) GetKpi(w http.ResponseWriter, r *http.Request) {
	def, err := h.catalogService.GetKpi(r.Context(), chi.URLParam(r, "kpiID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toKpiDetail(def))
}

// SearchKpis implements CatalogHandler.
func (h *CatalogHandlerImpl) SearchKpis(w http.ResponseWriter, r *http.Request) {
	kpis, err := h.catalogService.SearchKpis(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("SearchKpis service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if kpis == nil {
		kpis = []kpi.DefinitionDetail{}
	}
	response.Success(w, kpis)
}

// ListKpiRefs implements CatalogHandler.
func (h *CatalogHandlerImpl) ListKpiRefs(w http.ResponseWriter, r *http.Request) {
	refs, err := h.catalogService.ListKpiRefs(r.Context())
	if err != nil {
		slog.Error("ListKpiRefs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if refs == nil {
		refs = []kpi.Ref{}
	}
	response.Success(w, refs)
}

// UpdateKpi implements CatalogHandler.
func (h *CatalogHandlerImpl) UpdateKpi(w http.ResponseWriter, r *http.Request) {
	var updateReq kpi.UpdateKpiRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateKpi decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "kpiID")

	if err := h.catalogService.UpdateKpi(r.Context(), updateReq); err != nil {
		slog.Error("UpdateKpi service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "KPI updated successfully", nil)
}

// CreateDepartment implements CatalogHandler.
func (h *CatalogHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var createReq struct {
		Name string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateDepartment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	dept, err := h.catalogService.CreateDepartment(r.Context(), createReq.Name)
	if err != nil {
		slog.Error("CreateDepartment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", department.DepartmentResponse{
		ID:   dept.ID,
		Name: dept.Name,
	})
}

// ListDepartments implements CatalogHandler.
func (h *CatalogHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	depts, err := h.catalogService.ListDepartments(r.Context())
	if err != nil {
		slog.Error("ListDepartments service error", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]department.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		out = append(out, department.DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	response.Success(w, out)
}

func toKpiDetail(d kpi.Definition) kpi.DefinitionDetail {
	return kpi.DefinitionDetail{
		ID:           d.ID,
		Description:  d.Description,
		Unit:         d.Unit,
		Target:       d.Target,
		DepartmentID: d.DepartmentID,
		Red:          d.Red,
		Yellow:       d.Yellow,
		Green:        d.Green,
		IsCriterion:  d.IsCriterion,
	}
}
