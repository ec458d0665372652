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

// CompanyRepository handles company persistence. Every query is scoped to
// the owning user; there is no path that reads or writes another owner's
// rows.
type CompanyRepository struct {
	db *database.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *database.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a new company stamped with its owner
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	if company.ID == "" {
		company.ID = uuid.New().String()
	}

	query := `
		INSERT INTO companies (id, owner_id, name, cnpj, city, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		company.ID,
		company.OwnerID,
		company.Name,
		company.CNPJ,
		company.City,
		company.State,
	).Scan(&company.CreatedAt)

	return mapStoreError(err)
}

// ListByOwner returns all of the owner's companies, newest first
func (r *CompanyRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Company, error) {
	companies := []*domain.Company{}
	query := `
		SELECT id, owner_id, name, cnpj, city, state, created_at
		FROM companies
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	if err := r.db.SelectContext(ctx, &companies, query, ownerID); err != nil {
		return nil, mapStoreError(err)
	}

	return companies, nil
}

// GetByID returns one of the owner's companies by id
func (r *CompanyRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Company, error) {
	var company domain.Company
	query := `
		SELECT id, owner_id, name, cnpj, city, state, created_at
		FROM companies
		WHERE id = $1 AND owner_id = $2
	`

	err := r.db.GetContext(ctx, &company, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("company")
	}
	if err != nil {
		return nil, mapStoreError(err)
	}

	return &company, nil
}

// Update rewrites the editable fields of one of the owner's companies.
// Ownership is part of the WHERE clause and never changes.
func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	query := `
		UPDATE companies
		SET name = $1, cnpj = $2, city = $3, state = $4
		WHERE id = $5 AND owner_id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		company.Name,
		company.CNPJ,
		company.City,
		company.State,
		company.ID,
		company.OwnerID,
	)
	if err != nil {
		return mapStoreError(err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("company")
	}

	return nil
}

// Delete removes one of the owner's companies by id
func (r *CompanyRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM companies WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return mapStoreError(err)
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return apperrors.NotFound("company")
	}

	return nil
}

// CountByOwner returns how many companies the owner has
func (r *CompanyRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM companies WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return count, nil
}

// mapStoreError converts database errors into AppErrors the handler layer
// can surface verbatim. Unrecognized errors pass through untouched.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if appErr := database.MapPQError(err); appErr != nil {
		return appErr
	}
	return err
}
