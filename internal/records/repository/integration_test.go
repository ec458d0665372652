package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/pkg/database"
	apperrors "github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/logger"
	"github.com/riskintel/riskintel-backend/pkg/testutil"
)

// TestRecordRepositoriesIntegration runs the record stores against a real
// PostgreSQL instance. Skipped in -short mode.
func TestRecordRepositoriesIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := testutil.NewPostgresContainer(ctx, testutil.DefaultPostgresConfig())
	require.NoError(t, err)
	defer container.Terminate(ctx)

	sqlxDB, err := container.Connect(ctx)
	require.NoError(t, err)
	defer sqlxDB.Close()

	require.NoError(t, container.CreateSchema(ctx, sqlxDB))

	log := logger.New("test", "test")
	db := database.FromSqlx(sqlxDB, log)

	ownerA := uuid.New().String()
	ownerB := uuid.New().String()
	for _, owner := range []string{ownerA, ownerB} {
		_, err := sqlxDB.ExecContext(ctx,
			`INSERT INTO users (id, email, password_hash, name) VALUES ($1, $2, 'x', 'Test User')`,
			owner, owner+"@example.com")
		require.NoError(t, err)
	}

	companies := NewCompanyRepository(db)
	sectors := NewSectorRepository(db)
	risks := NewRiskRepository(db)
	assessments := NewErgonomicsRepository(db)

	t.Run("company CRUD", func(t *testing.T) {
		company := &domain.Company{OwnerID: ownerA, Name: "Metalurgica Alfa"}
		require.NoError(t, companies.Create(ctx, company))
		assert.NotEmpty(t, company.ID)
		assert.False(t, company.CreatedAt.IsZero())

		got, err := companies.GetByID(ctx, ownerA, company.ID)
		require.NoError(t, err)
		assert.Equal(t, "Metalurgica Alfa", got.Name)

		got.Name = "Metalurgica Alfa Ltda"
		require.NoError(t, companies.Update(ctx, got))

		updated, err := companies.GetByID(ctx, ownerA, company.ID)
		require.NoError(t, err)
		assert.Equal(t, "Metalurgica Alfa Ltda", updated.Name)
		assert.Equal(t, ownerA, updated.OwnerID)

		count, err := companies.CountByOwner(ctx, ownerA)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("owner isolation", func(t *testing.T) {
		company := &domain.Company{OwnerID: ownerA, Name: "Beta Logistica"}
		require.NoError(t, companies.Create(ctx, company))

		// another owner cannot read, update or delete the row
		_, err := companies.GetByID(ctx, ownerB, company.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

		stolen := *company
		stolen.OwnerID = ownerB
		stolen.Name = "Hijacked"
		assert.True(t, apperrors.Is(companies.Update(ctx, &stolen), apperrors.ErrNotFound))

		assert.True(t, apperrors.Is(companies.Delete(ctx, ownerB, company.ID), apperrors.ErrNotFound))

		// the row is untouched
		got, err := companies.GetByID(ctx, ownerA, company.ID)
		require.NoError(t, err)
		assert.Equal(t, "Beta Logistica", got.Name)
	})

	t.Run("risk constraint surfaces as validation error", func(t *testing.T) {
		company := &domain.Company{OwnerID: ownerA, Name: "Gama Industria"}
		require.NoError(t, companies.Create(ctx, company))

		risk := &domain.Risk{
			OwnerID:         ownerA,
			CompanyID:       company.ID,
			Hazard:          "Ruido",
			RiskDescription: "Exposicao continua",
			Probability:     9,
			Severity:        4,
		}
		err := risks.Create(ctx, risk)

		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		assert.Contains(t, appErr.Details, "probability")
	})

	t.Run("sector and assessment round trip", func(t *testing.T) {
		company := &domain.Company{OwnerID: ownerA, Name: "Delta Servicos"}
		require.NoError(t, companies.Create(ctx, company))

		role := "Operador"
		sector := &domain.Sector{
			OwnerID:    ownerA,
			CompanyID:  company.ID,
			SectorName: "Producao",
			RoleName:   &role,
		}
		require.NoError(t, sectors.Create(ctx, sector))

		assessment := &domain.ErgonomicAssessment{
			OwnerID:     ownerA,
			CompanyID:   company.ID,
			SectorID:    &sector.ID,
			WorkerName:  "Maria Souza",
			RoleName:    "Operadora",
			Workstation: "Linha 2",
			Posture:     1, Repetitiveness: 2, ForceEffort: 3, LiftingLoad: 4,
			PacePressure: 5, BreakAdequacy: 1, Environment: 2, Organization: 3,
		}
		require.NoError(t, assessments.Create(ctx, assessment))

		got, err := assessments.GetByID(ctx, ownerA, assessment.ID)
		require.NoError(t, err)
		assert.Equal(t, 2.6, got.Score())
		require.NotNil(t, got.SectorID)
		assert.Equal(t, sector.ID, *got.SectorID)

		require.NoError(t, assessments.Delete(ctx, ownerA, assessment.ID))
		_, err = assessments.GetByID(ctx, ownerA, assessment.ID)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("list newest first", func(t *testing.T) {
		listOwner := uuid.New().String()
		_, err := sqlxDB.ExecContext(ctx,
			`INSERT INTO users (id, email, password_hash, name) VALUES ($1, $2, 'x', 'Test User')`,
			listOwner, listOwner+"@example.com")
		require.NoError(t, err)

		first := &domain.Company{OwnerID: listOwner, Name: "Primeira"}
		require.NoError(t, companies.Create(ctx, first))
		second := &domain.Company{OwnerID: listOwner, Name: "Segunda"}
		require.NoError(t, companies.Create(ctx, second))

		list, err := companies.ListByOwner(ctx, listOwner)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.False(t, list[0].CreatedAt.Before(list[1].CreatedAt))
	})
}
