package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/internal/records/service"
	"github.com/riskintel/riskintel-backend/pkg/httputil"
	"github.com/riskintel/riskintel-backend/pkg/logger"
)

// SectorHandler handles sector endpoints
type SectorHandler struct {
	service *service.SectorService
	logger  *logger.Logger
}

// NewSectorHandler creates a new sector handler
func NewSectorHandler(svc *service.SectorService, log *logger.Logger) *SectorHandler {
	return &SectorHandler{service: svc, logger: log}
}

// SectorRequest is the create/update payload for a sector
type SectorRequest struct {
	CompanyID  string  `json:"company_id"`
	SectorName string  `json:"sector_name"`
	RoleName   *string `json:"role_name,omitempty"`
	Note       *string `json:"note,omitempty"`
}

func (req *SectorRequest) toDomain() *domain.Sector {
	return &domain.Sector{
		CompanyID:  req.CompanyID,
		SectorName: req.SectorName,
		RoleName:   req.RoleName,
		Note:       req.Note,
	}
}

// List lists the owner's sectors with optional q, sort and company_id
func (h *SectorHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())

	sectors, err := h.service.List(r.Context(), ownerID, listParams(r))
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, sectors, &httputil.Meta{Total: len(sectors)})
}

// Get returns one sector by id
func (h *SectorHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	sector, err := h.service.Get(r.Context(), ownerID, id)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, sector)
}

// Create creates a new sector
func (h *SectorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SectorRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	ownerID := httputil.GetOwnerID(r.Context())

	sector, err := h.service.Create(r.Context(), ownerID, req.toDomain())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.Created(w, sector)
}

// Update rewrites one sector by id
func (h *SectorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req SectorRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	sector, err := h.service.Update(r.Context(), ownerID, id, req.toDomain())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, sector)
}

// Delete removes one sector by id
func (h *SectorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.NoContent(w)
}
