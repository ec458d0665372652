// Package handler exposes the record resources over REST. Every handler
// reads the owner identity from the request context placed there by the
// auth middleware; nothing here re-derives ownership.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/internal/records/service"
	"github.com/riskintel/riskintel-backend/pkg/httputil"
	"github.com/riskintel/riskintel-backend/pkg/logger"
)

// CompanyHandler handles company endpoints
type CompanyHandler struct {
	service *service.CompanyService
	logger  *logger.Logger
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(svc *service.CompanyService, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{service: svc, logger: log}
}

// CompanyRequest is the create/update payload for a company
type CompanyRequest struct {
	Name  string  `json:"name"`
	CNPJ  *string `json:"cnpj,omitempty"`
	City  *string `json:"city,omitempty"`
	State *string `json:"state,omitempty"`
}

func (req *CompanyRequest) toDomain() *domain.Company {
	return &domain.Company{
		Name:  req.Name,
		CNPJ:  req.CNPJ,
		City:  req.City,
		State: req.State,
	}
}

// List lists the owner's companies with optional q and sort parameters
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())

	companies, err := h.service.List(r.Context(), ownerID, listParams(r))
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, companies, &httputil.Meta{Total: len(companies)})
}

// Get returns one company by id
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	company, err := h.service.Get(r.Context(), ownerID, id)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, company)
}

// Create creates a new company
func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CompanyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	ownerID := httputil.GetOwnerID(r.Context())

	company, err := h.service.Create(r.Context(), ownerID, req.toDomain())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.Created(w, company)
}

// Update rewrites one company by id
func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req CompanyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	company, err := h.service.Update(r.Context(), ownerID, id, req.toDomain())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, company)
}

// Delete removes one company by id
func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.NoContent(w)
}

// listParams extracts the shared list query parameters
func listParams(r *http.Request) service.ListParams {
	q := r.URL.Query()
	return service.ListParams{
		Query:     q.Get("q"),
		Sort:      q.Get("sort"),
		CompanyID: q.Get("company_id"),
		SectorID:  q.Get("sector_id"),
	}
}
