package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/pkg/database"
	apperrors "github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/logger"
	"github.com/riskintel/riskintel-backend/pkg/testutil"
)

func newCompanyRepo(t *testing.T) (*CompanyRepository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	log := logger.New("test", "test")
	repo := NewCompanyRepository(database.FromSqlx(mockDB.DB, log))
	return repo, mockDB
}

func TestCompanyCreate(t *testing.T) {
	repo, mockDB := newCompanyRepo(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("INSERT INTO companies").
		WithArgs(testutil.AnyUUID{}, "owner-1", "Metalurgica Alfa", nil, nil, nil).
		WillReturnRows(testutil.MockRows("created_at").AddRow(time.Now()))

	company := &domain.Company{OwnerID: "owner-1", Name: "Metalurgica Alfa"}
	err := repo.Create(context.Background(), company)

	require.NoError(t, err)
	assert.NotEmpty(t, company.ID)
	assert.False(t, company.CreatedAt.IsZero())
	mockDB.ExpectationsWereMet(t)
}

func TestCompanyGetByIDNotFound(t *testing.T) {
	repo, mockDB := newCompanyRepo(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT id, owner_id, name, cnpj, city, state, created_at").
		WithArgs("missing", "owner-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "owner-1", "missing")

	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	mockDB.ExpectationsWereMet(t)
}

func TestCompanyListByOwnerScopesToOwner(t *testing.T) {
	repo, mockDB := newCompanyRepo(t)
	defer mockDB.Close()

	rows := testutil.MockRows("id", "owner_id", "name", "cnpj", "city", "state", "created_at").
		AddRow("c1", "owner-1", "Alfa", nil, nil, nil, time.Now()).
		AddRow("c2", "owner-1", "Beta", nil, nil, nil, time.Now())

	mockDB.ExpectQuery("FROM companies").
		WithArgs("owner-1").
		WillReturnRows(rows)

	companies, err := repo.ListByOwner(context.Background(), "owner-1")

	require.NoError(t, err)
	assert.Len(t, companies, 2)
	mockDB.ExpectationsWereMet(t)
}

func TestCompanyUpdateNotFound(t *testing.T) {
	repo, mockDB := newCompanyRepo(t)
	defer mockDB.Close()

	// zero rows affected means the id does not exist for this owner
	mockDB.ExpectExec("UPDATE companies").
		WillReturnResult(sqlmock.NewResult(0, 0))

	company := &domain.Company{ID: "missing", OwnerID: "owner-1", Name: "Alfa"}
	err := repo.Update(context.Background(), company)

	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	mockDB.ExpectationsWereMet(t)
}

func TestCompanyDeleteNotFound(t *testing.T) {
	repo, mockDB := newCompanyRepo(t)
	defer mockDB.Close()

	mockDB.ExpectExec("DELETE FROM companies").
		WithArgs("missing", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "owner-1", "missing")

	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	mockDB.ExpectationsWereMet(t)
}

func TestCompanyCreateMapsCheckConstraint(t *testing.T) {
	repo, mockDB := newCompanyRepo(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("INSERT INTO companies").
		WillReturnError(&pq.Error{Code: "23514", Constraint: "state_length"})

	state := "XYZ"
	company := &domain.Company{OwnerID: "owner-1", Name: "Alfa", State: &state}
	err := repo.Create(context.Background(), company)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, appErr.Details, "state")
	mockDB.ExpectationsWereMet(t)
}

func TestCompanyCountByOwner(t *testing.T) {
	repo, mockDB := newCompanyRepo(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT COUNT(*) FROM companies").
		WithArgs("owner-1").
		WillReturnRows(testutil.MockRows("count").AddRow(3))

	count, err := repo.CountByOwner(context.Background(), "owner-1")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
	mockDB.ExpectationsWereMet(t)
}
