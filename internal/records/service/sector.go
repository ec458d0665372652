package service

import (
	"context"

	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/internal/records/events"
	"github.com/riskintel/riskintel-backend/internal/records/repository"
	apperrors "github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/logger"
)

// SectorService handles sector business logic. A sector is a duplicate when
// its company plus normalized sector and role labels match an existing row.
type SectorService struct {
	repo      *repository.SectorRepository
	companies *repository.CompanyRepository
	events    *events.RecordEventPublisher
	logger    *logger.Logger
}

// NewSectorService creates a new sector service
func NewSectorService(repo *repository.SectorRepository, companies *repository.CompanyRepository, events *events.RecordEventPublisher, log *logger.Logger) *SectorService {
	return &SectorService{
		repo:      repo,
		companies: companies,
		events:    events,
		logger:    log,
	}
}

// Create validates and saves a new sector for the owner
func (s *SectorService) Create(ctx context.Context, ownerID string, sector *domain.Sector) (*domain.Sector, error) {
	sector.OwnerID = ownerID
	sector.Normalize()

	if details := sector.Validate(); len(details) > 0 {
		return nil, apperrors.Validation(details)
	}

	if _, err := s.companies.GetByID(ctx, ownerID, sector.CompanyID); err != nil {
		return nil, err
	}

	if err := s.checkDuplicate(ctx, ownerID, sector, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, sector); err != nil {
		return nil, err
	}

	s.logger.Info().Str("sector_id", sector.ID).Msg("sector created")
	s.events.PublishCreated(ctx, "sector", sector.ID, ownerID)

	return sector, nil
}

// List returns the owner's sectors after applying the company filter,
// query filter and sort. Accepts SortName and SortRole.
func (s *SectorService) List(ctx context.Context, ownerID string, params ListParams) ([]*domain.Sector, error) {
	sectors, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if params.CompanyID != "" {
		sectors = filterRecords(sectors, func(sec *domain.Sector) bool {
			return sec.CompanyID == params.CompanyID
		})
	}

	if query := domain.NormalizeKey(params.Query); query != "" {
		sectors = filterRecords(sectors, func(sec *domain.Sector) bool {
			return matchesAny(query, sec.SectorName, deref(sec.RoleName), deref(sec.Note))
		})
	}

	name := func(sec *domain.Sector) string { return sec.SectorName }
	switch params.Sort {
	case SortName:
		sortByText(sectors, name, name)
	case SortRole:
		sortByText(sectors, func(sec *domain.Sector) string { return deref(sec.RoleName) }, name)
	}

	return sectors, nil
}

// Get returns one of the owner's sectors
func (s *SectorService) Get(ctx context.Context, ownerID, id string) (*domain.Sector, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// Update validates and saves changes to one of the owner's sectors
func (s *SectorService) Update(ctx context.Context, ownerID, id string, sector *domain.Sector) (*domain.Sector, error) {
	sector.ID = id
	sector.OwnerID = ownerID
	sector.Normalize()

	if details := sector.Validate(); len(details) > 0 {
		return nil, apperrors.Validation(details)
	}

	if _, err := s.companies.GetByID(ctx, ownerID, sector.CompanyID); err != nil {
		return nil, err
	}

	if err := s.checkDuplicate(ctx, ownerID, sector, id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, sector); err != nil {
		return nil, err
	}

	s.logger.Info().Str("sector_id", id).Msg("sector updated")
	s.events.PublishUpdated(ctx, "sector", id, ownerID)

	return s.repo.GetByID(ctx, ownerID, id)
}

// Delete removes one of the owner's sectors
func (s *SectorService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	s.logger.Info().Str("sector_id", id).Msg("sector deleted")
	s.events.PublishDeleted(ctx, "sector", id, ownerID)

	return nil
}

func (s *SectorService) checkDuplicate(ctx context.Context, ownerID string, sector *domain.Sector, excludeID string) error {
	existing, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	key := sector.Key()
	for _, other := range existing {
		if other.ID != excludeID && other.Key() == key {
			return apperrors.Duplicate("sector_name")
		}
	}

	return nil
}
