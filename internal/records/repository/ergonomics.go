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

// ErgonomicsRepository handles ergonomic assessment persistence
type ErgonomicsRepository struct {
	db *database.DB
}

// NewErgonomicsRepository creates a new ergonomics repository
func NewErgonomicsRepository(db *database.DB) *ErgonomicsRepository {
	return &ErgonomicsRepository{db: db}
}

const ergonomicsColumns = `id, owner_id, company_id, sector_id, worker_name, role_name, workstation,
	       posture, repetitiveness, force_effort, lifting_load, pace_pressure,
	       break_adequacy, environment, organization, notes, recommended_actions, created_at`

// Create inserts a new assessment stamped with its owner
func (r *ErgonomicsRepository) Create(ctx context.Context, assessment *domain.ErgonomicAssessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.New().String()
	}

	query := `
		INSERT INTO ergonomic_assessments (
			id, owner_id, company_id, sector_id, worker_name, role_name, workstation,
			posture, repetitiveness, force_effort, lifting_load, pace_pressure,
			break_adequacy, environment, organization, notes, recommended_actions
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		assessment.ID,
		assessment.OwnerID,
		assessment.CompanyID,
		assessment.SectorID,
		assessment.WorkerName,
		assessment.RoleName,
		assessment.Workstation,
		assessment.Posture,
		assessment.Repetitiveness,
		assessment.ForceEffort,
		assessment.LiftingLoad,
		assessment.PacePressure,
		assessment.BreakAdequacy,
		assessment.Environment,
		assessment.Organization,
		assessment.Notes,
		assessment.RecommendedActions,
	).Scan(&assessment.CreatedAt)

	return mapStoreError(err)
}

// ListByOwner returns all of the owner's assessments, newest first
func (r *ErgonomicsRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.ErgonomicAssessment, error) {
	assessments := []*domain.ErgonomicAssessment{}
	query := `
		SELECT ` + ergonomicsColumns + `
		FROM ergonomic_assessments
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &assessments, query, ownerID); err != nil {
		return nil, mapStoreError(err)
	}

	return assessments, nil
}

// GetByID returns one of the owner's assessments by id
func (r *ErgonomicsRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.ErgonomicAssessment, error) {
	var assessment domain.ErgonomicAssessment
	query := `
		SELECT ` + ergonomicsColumns + `
		FROM ergonomic_assessments
		WHERE id = $1 AND owner_id = $2
	`

	err := r.db.GetContext(ctx, &assessment, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("assessment")
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	return &assessment, nil
}

// Update rewrites the editable fields of one of the owner's assessments
func (r *ErgonomicsRepository) Update(ctx context.Context, assessment *domain.ErgonomicAssessment) error {
	query := `
		UPDATE ergonomic_assessments
		SET company_id = $1, sector_id = $2, worker_name = $3, role_name = $4,
		    workstation = $5, posture = $6, repetitiveness = $7, force_effort = $8,
		    lifting_load = $9, pace_pressure = $10, break_adequacy = $11,
		    environment = $12, organization = $13, notes = $14, recommended_actions = $15
		WHERE id = $16 AND owner_id = $17
	`

	result, err := r.db.ExecContext(ctx, query,
		assessment.CompanyID,
		assessment.SectorID,
		assessment.WorkerName,
		assessment.RoleName,
		assessment.Workstation,
		assessment.Posture,
		assessment.Repetitiveness,
		assessment.ForceEffort,
		assessment.LiftingLoad,
		assessment.PacePressure,
		assessment.BreakAdequacy,
		assessment.Environment,
		assessment.Organization,
		assessment.Notes,
		assessment.RecommendedActions,
		assessment.ID,
		assessment.OwnerID,
	)
	if err != nil {
		return mapStoreError(err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("assessment")
	}

	return nil
}

// Delete removes one of the owner's assessments by id
func (r *ErgonomicsRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM ergonomic_assessments WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return mapStoreError(err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("assessment")
	}

	return nil
}

// CountByOwner returns how many assessments the owner has
func (r *ErgonomicsRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM ergonomic_assessments WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return count, nil
}
