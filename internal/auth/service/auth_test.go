package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskintel/riskintel-backend/internal/auth/jwt"
	"github.com/riskintel/riskintel-backend/internal/auth/repository"
	"github.com/riskintel/riskintel-backend/pkg/config"
	"github.com/riskintel/riskintel-backend/pkg/database"
	apperrors "github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/logger"
	"github.com/riskintel/riskintel-backend/pkg/testutil"
)

func newAuthService(t *testing.T) (*AuthService, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	log := logger.New("test", "test")
	db := database.FromSqlx(mockDB.DB, log)

	jwtManager := jwt.NewManager(&config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "riskintel-test",
	})

	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		jwtManager,
		log,
	)
	return svc, mockDB
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, mockDB := newAuthService(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT COUNT(*) FROM users").
		WithArgs("ana@example.com").
		WillReturnRows(testutil.MockRows("count").AddRow(1))

	_, err := svc.Register(context.Background(), " Ana@Example.com ", "s3cret-pass", "Ana", "", "")

	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicate))
	mockDB.ExpectationsWereMet(t)
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	svc, mockDB := newAuthService(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT COUNT(*) FROM users").
		WithArgs("ana@example.com").
		WillReturnRows(testutil.MockRows("count").AddRow(0))

	mockDB.ExpectQuery("INSERT INTO users").
		WillReturnRows(testutil.MockRows("created_at").AddRow(time.Now()))

	mockDB.ExpectExec("INSERT INTO sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.Register(context.Background(), "ana@example.com", "s3cret-pass", " Ana ", "test-agent", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, "Ana", resp.User.Name)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	mockDB.ExpectationsWereMet(t)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mockDB := newAuthService(t)
	defer mockDB.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mockDB.ExpectQuery("SELECT id, email, password_hash, name, created_at").
		WithArgs("ana@example.com").
		WillReturnRows(testutil.MockRows("id", "email", "password_hash", "name", "created_at").
			AddRow("user-1", "ana@example.com", string(hash), "Ana", time.Now()))

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong-pass", "", "")

	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
	mockDB.ExpectationsWereMet(t)
}

func TestLoginUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, mockDB := newAuthService(t)
	defer mockDB.Close()

	mockDB.ExpectQuery("SELECT id, email, password_hash, name, created_at").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever", "", "")

	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCredentials))
	mockDB.ExpectationsWereMet(t)
}

func TestLoginSuccess(t *testing.T) {
	svc, mockDB := newAuthService(t)
	defer mockDB.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	mockDB.ExpectQuery("SELECT id, email, password_hash, name, created_at").
		WithArgs("ana@example.com").
		WillReturnRows(testutil.MockRows("id", "email", "password_hash", "name", "created_at").
			AddRow("user-1", "ana@example.com", string(hash), "Ana", time.Now()))

	mockDB.ExpectExec("INSERT INTO sessions").
		WithArgs(testutil.AnyUUID{}, "user-1", sqlmock.AnyArg(), "test-agent", "127.0.0.1",
			testutil.AnyTime{}, testutil.AnyTime{}, testutil.AnyTime{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.Login(context.Background(), "ana@example.com", "correct-pass", "test-agent", "127.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.User.ID)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	mockDB.ExpectationsWereMet(t)
}
