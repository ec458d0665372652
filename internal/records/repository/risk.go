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

// RiskRepository handles risk inventory persistence
type RiskRepository struct {
	db *database.DB
}

// NewRiskRepository creates a new risk repository
func NewRiskRepository(db *database.DB) *RiskRepository {
	return &RiskRepository{db: db}
}

// Create inserts a new risk stamped with its owner
func (r *RiskRepository) Create(ctx context.Context, risk *domain.Risk) error {
	if risk.ID == "" {
		risk.ID = uuid.New().String()
	}

	query := `
		INSERT INTO risks (
			id, owner_id, company_id, sector_id, hazard, risk_description,
			risk_type, existing_controls, recommended_actions, probability, severity
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		risk.ID,
		risk.OwnerID,
		risk.CompanyID,
		risk.SectorID,
		risk.Hazard,
		risk.RiskDescription,
		risk.RiskType,
		risk.ExistingControls,
		risk.RecommendedActions,
		risk.Probability,
		risk.Severity,
	).Scan(&risk.CreatedAt)

	return mapStoreError(err)
}

// ListByOwner returns all of the owner's risks, newest first
func (r *RiskRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Risk, error) {
	risks := []*domain.Risk{}
	query := `
		SELECT id, owner_id, company_id, sector_id, hazard, risk_description,
		       risk_type, existing_controls, recommended_actions, probability, severity, created_at
		FROM risks
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &risks, query, ownerID); err != nil {
		return nil, mapStoreError(err)
	}

	return risks, nil
}

// GetByID returns one of the owner's risks by id
func (r *RiskRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Risk, error) {
	var risk domain.Risk
	query := `
		SELECT id, owner_id, company_id, sector_id, hazard, risk_description,
		       risk_type, existing_controls, recommended_actions, probability, severity, created_at
		FROM risks
		WHERE id = $1 AND owner_id = $2
	`

	err := r.db.GetContext(ctx, &risk, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("risk")
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	return &risk, nil
}

// Update rewrites the editable fields of one of the owner's risks
func (r *RiskRepository) Update(ctx context.Context, risk *domain.Risk) error {
	query := `
		UPDATE risks
		SET company_id = $1, sector_id = $2, hazard = $3, risk_description = $4,
		    risk_type = $5, existing_controls = $6, recommended_actions = $7,
		    probability = $8, severity = $9
		WHERE id = $10 AND owner_id = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		risk.CompanyID,
		risk.SectorID,
		risk.Hazard,
		risk.RiskDescription,
		risk.RiskType,
		risk.ExistingControls,
		risk.RecommendedActions,
		risk.Probability,
		risk.Severity,
		risk.ID,
		risk.OwnerID,
	)
	if err != nil {
		return mapStoreError(err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("risk")
	}

	return nil
}

// Delete removes one of the owner's risks by id
func (r *RiskRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM risks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return mapStoreError(err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("risk")
	}

	return nil
}

// CountByOwner returns how many risks the owner has
func (r *RiskRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM risks WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return count, nil
}
