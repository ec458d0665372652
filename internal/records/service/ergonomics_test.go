package service

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskintel/riskintel-backend/internal/records/domain"
	"github.com/riskintel/riskintel-backend/internal/records/repository"
	"github.com/riskintel/riskintel-backend/pkg/database"
	"github.com/riskintel/riskintel-backend/pkg/logger"
	"github.com/riskintel/riskintel-backend/pkg/testutil"
)

func newErgonomicsService(t *testing.T) (*ErgonomicsService, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	log := logger.New("test", "test")
	db := database.FromSqlx(mockDB.DB, log)
	assessments := repository.NewErgonomicsRepository(db)
	companies := repository.NewCompanyRepository(db)
	return NewErgonomicsService(assessments, companies, nil, log), mockDB
}

func assessmentRow(id, worker string, factors [8]int) []driver.Value {
	return []driver.Value{
		id, "owner-1", "c1", nil, worker, "Operadora", "Linha 1",
		factors[0], factors[1], factors[2], factors[3],
		factors[4], factors[5], factors[6], factors[7],
		nil, nil, time.Now(),
	}
}

func assessmentColumns() []string {
	return []string{
		"id", "owner_id", "company_id", "sector_id", "worker_name", "role_name", "workstation",
		"posture", "repetitiveness", "force_effort", "lifting_load", "pace_pressure",
		"break_adequacy", "environment", "organization", "notes", "recommended_actions", "created_at",
	}
}

func TestErgonomicsListSortsByScore(t *testing.T) {
	svc, mockDB := newErgonomicsService(t)
	defer mockDB.Close()

	rows := testutil.MockRows(assessmentColumns()...)
	rows.AddRow(assessmentRow("a1", "Maria", [8]int{2, 2, 2, 2, 2, 2, 2, 2})...)
	rows.AddRow(assessmentRow("a2", "Joao", [8]int{5, 5, 5, 5, 5, 5, 5, 5})...)
	rows.AddRow(assessmentRow("a3", "Carla", [8]int{3, 3, 3, 3, 3, 3, 3, 3})...)

	mockDB.ExpectQuery("FROM ergonomic_assessments").
		WithArgs("owner-1").
		WillReturnRows(rows)

	assessments, err := svc.List(context.Background(), "owner-1", ListParams{Sort: SortScore})

	require.NoError(t, err)
	require.Len(t, assessments, 3)
	assert.Equal(t, "Joao", assessments[0].WorkerName)
	assert.Equal(t, "Carla", assessments[1].WorkerName)
	assert.Equal(t, "Maria", assessments[2].WorkerName)
	mockDB.ExpectationsWereMet(t)
}

func TestErgonomicsCreateClampsFactors(t *testing.T) {
	svc, mockDB := newErgonomicsService(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("FROM companies").
		WithArgs("c1", "owner-1").
		WillReturnRows(testutil.MockRows("id", "owner_id", "name", "cnpj", "city", "state", "created_at").
			AddRow("c1", "owner-1", "Alfa", nil, nil, nil, time.Now()))

	// out-of-range factors reach the store already clamped
	mockDB.ExpectQuery("INSERT INTO ergonomic_assessments").
		WithArgs(testutil.AnyUUID{}, "owner-1", "c1", nil, "Maria Souza", "Operadora", "Linha 2",
			5, 1, 3, 3, 3, 3, 3, 3, nil, nil).
		WillReturnRows(testutil.MockRows("created_at").AddRow(time.Now()))

	assessment, err := svc.Create(context.Background(), "owner-1", &domain.ErgonomicAssessment{
		CompanyID:   "c1",
		WorkerName:  "Maria Souza",
		RoleName:    "Operadora",
		Workstation: "Linha 2",
		Posture:     9,
		Repetitiveness: 0,
		ForceEffort: 3, LiftingLoad: 3, PacePressure: 3,
		BreakAdequacy: 3, Environment: 3, Organization: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, 5, assessment.Posture)
	assert.Equal(t, 1, assessment.Repetitiveness)
	mockDB.ExpectationsWereMet(t)
}
