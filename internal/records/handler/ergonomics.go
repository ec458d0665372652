package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/internal/records/service"
	"github.com/riskintel/riskintel-backend/pkg/httputil"
	"github.com/riskintel/riskintel-backend/pkg/logger"
)

// ErgonomicsHandler handles ergonomic assessment endpoints
type ErgonomicsHandler struct {
	service *service.ErgonomicsService
	logger  *logger.Logger
}

// NewErgonomicsHandler creates a new ergonomics handler
func NewErgonomicsHandler(svc *service.ErgonomicsService, log *logger.Logger) *ErgonomicsHandler {
	return &ErgonomicsHandler{service: svc, logger: log}
}

// ErgonomicsRequest is the create/update payload for an assessment. Factor
// fields decode through domain.FactorValue, so "4", 4 and 4.0 all land on
// the same score and junk input degrades instead of failing the request.
type ErgonomicsRequest struct {
	CompanyID          string             `json:"company_id"`
	SectorID           *string            `json:"sector_id,omitempty"`
	WorkerName         string             `json:"worker_name"`
	RoleName           string             `json:"role_name"`
	Workstation        string             `json:"workstation"`
	Posture            domain.FactorValue `json:"posture"`
	Repetitiveness     domain.FactorValue `json:"repetitiveness"`
	ForceEffort        domain.FactorValue `json:"force_effort"`
	LiftingLoad        domain.FactorValue `json:"lifting_load"`
	PacePressure       domain.FactorValue `json:"pace_pressure"`
	BreakAdequacy      domain.FactorValue `json:"break_adequacy"`
	Environment        domain.FactorValue `json:"environment"`
	Organization       domain.FactorValue `json:"organization"`
	Notes              *string            `json:"notes,omitempty"`
	RecommendedActions *string            `json:"recommended_actions,omitempty"`
}

func (req *ErgonomicsRequest) toDomain() *domain.ErgonomicAssessment {
	return &domain.ErgonomicAssessment{
		CompanyID:          req.CompanyID,
		SectorID:           req.SectorID,
		WorkerName:         req.WorkerName,
		RoleName:           req.RoleName,
		Workstation:        req.Workstation,
		Posture:            req.Posture.Int(),
		Repetitiveness:     req.Repetitiveness.Int(),
		ForceEffort:        req.ForceEffort.Int(),
		LiftingLoad:        req.LiftingLoad.Int(),
		PacePressure:       req.PacePressure.Int(),
		BreakAdequacy:      req.BreakAdequacy.Int(),
		Environment:        req.Environment.Int(),
		Organization:       req.Organization.Int(),
		Notes:              req.Notes,
		RecommendedActions: req.RecommendedActions,
	}
}

// AssessmentResponse is an assessment plus its computed overall score
type AssessmentResponse struct {
	*domain.ErgonomicAssessment
	Score float64 `json:"score"`
}

func toResponse(a *domain.ErgonomicAssessment) *AssessmentResponse {
	return &AssessmentResponse{ErgonomicAssessment: a, Score: a.Score()}
}

func toResponses(assessments []*domain.ErgonomicAssessment) []*AssessmentResponse {
	responses := make([]*AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		responses = append(responses, toResponse(a))
	}
	return responses
}

// List lists the owner's assessments with optional q, sort, company_id and
// sector_id
func (h *ErgonomicsHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())

	assessments, err := h.service.List(r.Context(), ownerID, listParams(r))
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, toResponses(assessments), &httputil.Meta{Total: len(assessments)})
}

// Get returns one assessment by id
func (h *ErgonomicsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	assessment, err := h.service.Get(r.Context(), ownerID, id)
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(assessment))
}

// Create creates a new assessment
func (h *ErgonomicsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ErgonomicsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	ownerID := httputil.GetOwnerID(r.Context())

	assessment, err := h.service.Create(r.Context(), ownerID, req.toDomain())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.Created(w, toResponse(assessment))
}

// Update rewrites one assessment by id
func (h *ErgonomicsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ErgonomicsRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, r, err)
		return
	}

	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	assessment, err := h.service.Update(r.Context(), ownerID, id, req.toDomain())
	if err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, toResponse(assessment))
}

// Delete removes one assessment by id
func (h *ErgonomicsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		httputil.Error(w, r, err)
		return
	}

	httputil.NoContent(w)
}
