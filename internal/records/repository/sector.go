package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/pkg/database"
	apperrors "github.com/riskintel/riskintel-backend/pkg/errors"
)

// SectorRepository handles sector persistence, owner-scoped like every
// record table.
type SectorRepository struct {
	db *database.DB
}

// NewSectorRepository creates a new sector repository
func NewSectorRepository(db *database.DB) *SectorRepository {
	return &SectorRepository{db: db}
}

// Create inserts a new sector stamped with its owner
func (r *SectorRepository) Create(ctx context.Context, sector *domain.Sector) error {
	if sector.ID == "" {
		sector.ID = uuid.New().String()
	}

	query := `
		INSERT INTO sectors (id, owner_id, company_id, sector_name, role_name, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		sector.ID,
		sector.OwnerID,
		sector.CompanyID,
		sector.SectorName,
		sector.RoleName,
		sector.Note,
	).Scan(&sector.CreatedAt)

	return mapStoreError(err)
}

// ListByOwner returns all of the owner's sectors, newest first
func (r *SectorRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Sector, error) {
	sectors := []*domain.Sector{}
	query := `
		SELECT id, owner_id, company_id, sector_name, role_name, note, created_at
		FROM sectors
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &sectors, query, ownerID); err != nil {
		return nil, mapStoreError(err)
	}

	return sectors, nil
}

// GetByID returns one of the owner's sectors by id
func (r *SectorRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Sector, error) {
	var sector domain.Sector
	query := `
		SELECT id, owner_id, company_id, sector_name, role_name, note, created_at
		FROM sectors
		WHERE id = $1 AND owner_id = $2
	`

	err := r.db.GetContext(ctx, &sector, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("sector")
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	return &sector, nil
}

// Update rewrites the editable fields of one of the owner's sectors
func (r *SectorRepository) Update(ctx context.Context, sector *domain.Sector) error {
	query := `
		UPDATE sectors
		SET company_id = $1, sector_name = $2, role_name = $3, note = $4
		WHERE id = $5 AND owner_id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		sector.CompanyID,
		sector.SectorName,
		sector.RoleName,
		sector.Note,
		sector.ID,
		sector.OwnerID,
	)
	if err != nil {
		return mapStoreError(err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("sector")
	}

	return nil
}

// Delete removes one of the owner's sectors by id
func (r *SectorRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM sectors WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return mapStoreError(err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("sector")
	}

	return nil
}

// CountByOwner returns how many sectors the owner has
func (r *SectorRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM sectors WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return count, nil
}
