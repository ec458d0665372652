package handler

import (
	"net/http"

	"github.com/riskintel/riskintel-backend/internal/records/service"
	"github.com/riskintel/riskintel-backend/pkg/httputil"
)

// DashboardHandler serves the owner's record counts
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary returns the per-type record counts for the owner
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())

	summary, err := h.service.Summary(r.Context(), ownerID)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, summary)
}
