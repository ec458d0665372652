package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/internal/records/service"
	"github.com/riskintel/riskintel-backend/pkg/httputil"
	"github.com/riskintel/riskintel-backend/pkg/logger"
)

// RiskHandler handles risk inventory endpoints
type RiskHandler struct {
	service *service.RiskService
	logger  *logger.Logger
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(svc *service.RiskService, log *logger.Logger) *RiskHandler {
	return &RiskHandler{service: svc, logger: log}
}

// RiskRequest is the create/update payload for a risk
type RiskRequest struct {
	CompanyID          string  `json:"company_id"`
	SectorID           *string `json:"sector_id,omitempty"`
	Hazard             string  `json:"hazard"`
	RiskDescription    string  `json:"risk_description"`
	RiskType           *string `json:"risk_type,omitempty"`
	ExistingControls   *string `json:"existing_controls,omitempty"`
	RecommendedActions *string `json:"recommended_actions,omitempty"`
	Probability        int     `json:"probability"`
	Severity           int     `json:"severity"`
}

func (req *RiskRequest) toDomain() *domain.Risk {
	return &domain.Risk{
		CompanyID:          req.CompanyID,
		SectorID:           req.SectorID,
		Hazard:             req.Hazard,
		RiskDescription:    req.RiskDescription,
		RiskType:           req.RiskType,
		ExistingControls:   req.ExistingControls,
		RecommendedActions: req.RecommendedActions,
		Probability:        req.Probability,
		Severity:           req.Severity,
	}
}

// List lists the owner's risks with optional q, sort, company_id and sector_id
func (h *RiskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())

	risks, err := h.service.List(r.Context(), ownerID, listParams(r))
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, risks, &httputil.Meta{Total: len(risks)})
}

// Get returns one risk by id
func (h *RiskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	risk, err := h.service.Get(r.Context(), ownerID, id)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, risk)
}

// Create creates a new risk
func (h *RiskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RiskRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	ownerID := httputil.GetOwnerID(r.Context())

	risk, err := h.service.Create(r.Context(), ownerID, req.toDomain())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.Created(w, risk)
}

// Update rewrites one risk by id
func (h *RiskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req RiskRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	risk, err := h.service.Update(r.Context(), ownerID, id, req.toDomain())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, risk)
}

// Delete removes one risk by id
func (h *RiskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.NoContent(w)
}
