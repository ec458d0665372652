package service

import (
	"context"

	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/internal/records/events"
	"github.com/riskintel/riskintel-backend/internal/records/repository"
	apperrors "github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/logger"
)

// ErgonomicsService handles ergonomic assessment business logic. Factor
// values are clamped during Normalize, so by the time a row reaches the
// store every factor sits in the valid range.
type ErgonomicsService struct {
	repo      *repository.ErgonomicsRepository
	companies *repository.CompanyRepository
	events    *events.RecordEventPublisher
	logger    *logger.Logger
}

// NewErgonomicsService creates a new ergonomics service
func NewErgonomicsService(repo *repository.ErgonomicsRepository, companies *repository.CompanyRepository, events *events.RecordEventPublisher, log *logger.Logger) *ErgonomicsService {
	return &ErgonomicsService{
		repo:      repo,
		companies: companies,
		events:    events,
		logger:    log,
	}
}

// Create validates and saves a new assessment for the owner
func (s *ErgonomicsService) Create(ctx context.Context, ownerID string, assessment *domain.ErgonomicAssessment) (*domain.ErgonomicAssessment, error) {
	assessment.OwnerID = ownerID
	assessment.Normalize()

	if details := assessment.Validate(); len(details) > 0 {
		return nil, apperrors.Validation(details)
	}

	if _, err := s.companies.GetByID(ctx, ownerID, assessment.CompanyID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, err
	}

	s.logger.Info().Str("assessment_id", assessment.ID).Msg("assessment created")
	s.events.PublishCreated(ctx, "assessment", assessment.ID, ownerID)

	return assessment, nil
}

// List returns the owner's assessments after applying reference filters,
// query filter and sort. Accepts SortName (worker) and SortScore (overall
// score, highest first).
func (s *ErgonomicsService) List(ctx context.Context, ownerID string, params ListParams) ([]*domain.ErgonomicAssessment, error) {
	assessments, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if params.CompanyID != "" {
		assessments = filterRecords(assessments, func(a *domain.ErgonomicAssessment) bool {
			return a.CompanyID == params.CompanyID
		})
	}

	if params.SectorID != "" {
		assessments = filterRecords(assessments, func(a *domain.ErgonomicAssessment) bool {
			return deref(a.SectorID) == params.SectorID
		})
	}

	if query := domain.NormalizeKey(params.Query); query != "" {
		assessments = filterRecords(assessments, func(a *domain.ErgonomicAssessment) bool {
			return matchesAny(query,
				a.WorkerName,
				a.RoleName,
				a.Workstation,
				deref(a.Notes),
				deref(a.RecommendedActions),
			)
		})
	}

	name := func(a *domain.ErgonomicAssessment) string { return a.WorkerName }
	switch params.Sort {
	case SortName:
		sortByText(assessments, name, name)
	case SortScore:
		sortByValueDesc(assessments, func(a *domain.ErgonomicAssessment) float64 { return a.Score() }, name)
	}

	return assessments, nil
}

// Get returns one of the owner's assessments
func (s *ErgonomicsService) Get(ctx context.Context, ownerID, id string) (*domain.ErgonomicAssessment, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// Update validates and saves changes to one of the owner's assessments
func (s *ErgonomicsService) Update(ctx context.Context, ownerID, id string, assessment *domain.ErgonomicAssessment) (*domain.ErgonomicAssessment, error) {
	assessment.ID = id
	assessment.OwnerID = ownerID
	assessment.Normalize()

	if details := assessment.Validate(); len(details) > 0 {
		return nil, apperrors.Validation(details)
	}

	if _, err := s.companies.GetByID(ctx, ownerID, assessment.CompanyID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, assessment); err != nil {
		return nil, err
	}

	s.logger.Info().Str("assessment_id", id).Msg("assessment updated")
	s.events.PublishUpdated(ctx, "assessment", id, ownerID)

	return s.repo.GetByID(ctx, ownerID, id)
}

// Delete removes one of the owner's assessments
func (s *ErgonomicsService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info().Str("assessment_id", id).Msg("assessment deleted")
	s.events.PublishDeleted(ctx, "assessment", id, ownerID)

	return nil
}
