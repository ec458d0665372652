// Package service holds the record business logic shared by every
// resource: normalize, validate, duplicate-check, persist, notify.
// Duplicate checks run against the owner's freshly loaded list and are
// best effort; two simultaneous saves can still both pass.
package service

import (
	"context"

	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/internal/records/events"
	"github.com/riskintel/riskintel-backend/internal/records/repository"
	apperrors "github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/logger"
)

// CompanyService handles company business logic
type CompanyService struct {
	repo   *repository.CompanyRepository
	events *events.RecordEventPublisher
	logger *logger.Logger
}

// NewCompanyService creates a new company service
func NewCompanyService(repo *repository.CompanyRepository, events *events.RecordEventPublisher, log *logger.Logger) *CompanyService {
	return &CompanyService{
		repo:   repo,
		events: events,
		logger: log,
	}
}

// Create validates and saves a new company for the owner. A company whose
// normalized name matches an existing one is rejected as a duplicate.
func (s *CompanyService) Create(ctx context.Context, ownerID string, company *domain.Company) (*domain.Company, error) {
	company.OwnerID = ownerID
	company.Normalize()

	if details := company.Validate(); len(details) > 0 {
		return nil, apperrors.Validation(details)
	}

	if err := s.checkDuplicate(ctx, ownerID, company, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Str("company_id", company.ID).Msg("company created")
	s.events.PublishCreated(ctx, "company", company.ID, ownerID)

	return company, nil
}

// List returns the owner's companies after applying query filter and sort.
// Accepts SortName and SortCity; anything else keeps recency order.
func (s *CompanyService) List(ctx context.Context, ownerID string, params ListParams) ([]*domain.Company, error) {
	companies, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if query := domain.NormalizeKey(params.Query); query != "" {
		companies = filterRecords(companies, func(c *domain.Company) bool {
			return matchesAny(query, c.Name, deref(c.CNPJ), deref(c.City), deref(c.State))
		})
	}

	name := func(c *domain.Company) string { return c.Name }
	switch params.Sort {
	case SortName:
		sortByText(companies, name, name)
	case SortCity:
		sortByText(companies, func(c *domain.Company) string { return deref(c.City) }, name)
	}

	return companies, nil
}

// Get returns one of the owner's companies
func (s *CompanyService) Get(ctx context.Context, ownerID, id string) (*domain.Company, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// Update validates and saves changes to one of the owner's companies. The
// duplicate check skips the row being edited so renaming a company to its
// own name is not a conflict.
func (s *CompanyService) Update(ctx context.Context, ownerID, id string, company *domain.Company) (*domain.Company, error) {
	company.ID = id
	company.OwnerID = ownerID
	company.Normalize()

	if details := company.Validate(); len(details) > 0 {
		return nil, apperrors.Validation(details)
	}

	if err := s.checkDuplicate(ctx, ownerID, company, id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, company); err != nil {
		return nil, err
	}

	s.logger.Info().Str("company_id", id).Msg("company updated")
	s.events.PublishUpdated(ctx, "company", id, ownerID)

	return s.repo.GetByID(ctx, ownerID, id)
}

// Delete removes one of the owner's companies
func (s *CompanyService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info().Str("company_id", id).Msg("company deleted")
	s.events.PublishDeleted(ctx, "company", id, ownerID)

	return nil
}

func (s *CompanyService) checkDuplicate(ctx context.Context, ownerID string, company *domain.Company, excludeID string) error {
	existing, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	key := company.Key()
	for _, other := range existing {
		if other.ID != excludeID && other.Key() == key {
			return apperrors.Duplicate("name")
		}
	}

	return nil
}
