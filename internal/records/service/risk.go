package service

import (
	"context"

	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/internal/records/events"
	"github.com/riskintel/riskintel-backend/internal/records/repository"
	apperrors "github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/logger"
)

// RiskService handles risk inventory business logic
type RiskService struct {
	repo      *repository.RiskRepository
	companies *repository.CompanyRepository
	events    *events.RecordEventPublisher
	logger    *logger.Logger
}

// NewRiskService creates a new risk service
func NewRiskService(repo *repository.RiskRepository, companies *repository.CompanyRepository, events *events.RecordEventPublisher, log *logger.Logger) *RiskService {
	return &RiskService{
		repo:      repo,
		companies: companies,
		events:    events,
		logger:    log,
	}
}

// Create validates and saves a new risk for the owner
func (s *RiskService) Create(ctx context.Context, ownerID string, risk *domain.Risk) (*domain.Risk, error) {
	risk.OwnerID = ownerID
	risk.Normalize()

	if details := risk.Validate(); len(details) > 0 {
		return nil, apperrors.Validation(details)
	}

	if _, err := s.companies.GetByID(ctx, ownerID, risk.CompanyID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, risk); err != nil {
		return nil, err
	}

	s.logger.Info().Str("risk_id", risk.ID).Msg("risk created")
	s.events.PublishCreated(ctx, "risk", risk.ID, ownerID)

	return risk, nil
}

// List returns the owner's risks after applying reference filters, query
// filter and sort. Accepts SortName (hazard) and SortLevel (probability
// times severity, highest first).
func (s *RiskService) List(ctx context.Context, ownerID string, params ListParams) ([]*domain.Risk, error) {
	risks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if params.CompanyID != "" {
		risks = filterRecords(risks, func(risk *domain.Risk) bool {
			return risk.CompanyID == params.CompanyID
		})
	}

	if params.SectorID != "" {
		risks = filterRecords(risks, func(risk *domain.Risk) bool {
			return deref(risk.SectorID) == params.SectorID
		})
	}

	if query := domain.NormalizeKey(params.Query); query != "" {
		risks = filterRecords(risks, func(risk *domain.Risk) bool {
			return matchesAny(query,
				risk.Hazard,
				risk.RiskDescription,
				deref(risk.RiskType),
				deref(risk.ExistingControls),
				deref(risk.RecommendedActions),
			)
		})
	}

	name := func(risk *domain.Risk) string { return risk.Hazard }
	switch params.Sort {
	case SortName:
		sortByText(risks, name, name)
	case SortLevel:
		sortByValueDesc(risks, func(risk *domain.Risk) float64 { return float64(risk.Level()) }, name)
	}

	return risks, nil
}

// Get returns one of the owner's risks
func (s *RiskService) Get(ctx context.Context, ownerID, id string) (*domain.Risk, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// Update validates and saves changes to one of the owner's risks
func (s *RiskService) Update(ctx context.Context, ownerID, id string, risk *domain.Risk) (*domain.Risk, error) {
	risk.ID = id
	risk.OwnerID = ownerID
	risk.Normalize()

	if details := risk.Validate(); len(details) > 0 {
		return nil, apperrors.Validation(details)
	}

	if _, err := s.companies.GetByID(ctx, ownerID, risk.CompanyID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, risk); err != nil {
		return nil, err
	}

	s.logger.Info().Str("risk_id", id).Msg("risk updated")
	s.events.PublishUpdated(ctx, "risk", id, ownerID)

	return s.repo.GetByID(ctx, ownerID, id)
}

// Delete removes one of the owner's risks
func (s *RiskService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info().Str("risk_id", id).Msg("risk deleted")
	s.events.PublishDeleted(ctx, "risk", id, ownerID)

	return nil
}
