package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/riskintel/riskintel-backend/internal/auth/jwt"
	"github.com/riskintel/riskintel-backend/internal/auth/repository"
	"github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/logger"
)

// AuthService handles account and session operations. Credentials are
// checked locally against bcrypt hashes; session state lives in the
// sessions table and access tokens are stateless JWTs.
type AuthService struct {
	users      *repository.UserRepository
	sessions   *repository.SessionRepository
	jwtManager *jwt.Manager
	logger     *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, sessions *repository.SessionRepository, jwtManager *jwt.Manager, log *logger.Logger) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		jwtManager: jwtManager,
		logger:     log,
	}
}

// UserResponse is the account shape returned to clients. The password hash
// never leaves this package.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse carries the account and its session tokens
type AuthResponse struct {
	User   *UserResponse  `json:"user"`
	Tokens *jwt.TokenPair `json:"tokens"`
}

// Register creates a new account and opens its first session
func (s *AuthService) Register(ctx context.Context, email, password, name, userAgent, ipAddress string) (*AuthResponse, error) {
	email = normalizeEmail(email)

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Duplicate("email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("failed to hash password")
	}

	user := &repository.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")

	return s.openSession(ctx, user, userAgent, ipAddress)
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.InvalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.InvalidCredentials()
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return s.openSession(ctx, user, userAgent, ipAddress)
}

// Refresh rotates a refresh token into a fresh token pair. The stored hash
// must match the presented token; a mismatch means the token was already
// rotated or the session tampered with, and the session is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.TokenInvalid()
	}

	if session.ID != claims.SessionID || session.UserID != claims.UserID {
		_ = s.sessions.Revoke(ctx, session.ID)
		return nil, errors.TokenInvalid()
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, errors.TokenInvalid()
	}

	tokens, err := s.jwtManager.GenerateTokenPair(&jwt.UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, session.ID)
	if err != nil {
		return nil, errors.Internal("failed to generate tokens")
	}

	if err := s.sessions.UpdateRefreshTokenHash(ctx, session.ID, tokens.RefreshToken); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:   toUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Logout revokes the session behind the refresh token. Revoking an unknown
// token is a no-op; logout never fails for the client.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.sessions.RevokeByRefreshToken(ctx, refreshToken)
}

// CurrentUser returns the account for an authenticated user id
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *AuthService) openSession(ctx context.Context, user *repository.User, userAgent, ipAddress string) (*AuthResponse, error) {
	sessionID := uuid.New().String()

	tokens, err := s.jwtManager.GenerateTokenPair(&jwt.UserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, sessionID)
	if err != nil {
		return nil, errors.Internal("failed to generate tokens")
	}

	expiresAt := time.Now().Add(s.jwtManager.GetRefreshExpiry())
	if _, err := s.sessions.CreateWithID(ctx, sessionID, user.ID, tokens.RefreshToken, expiresAt, userAgent, ipAddress); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:   toUserResponse(user),
		Tokens: tokens,
	}, nil
}

func toUserResponse(user *repository.User) *UserResponse {
	return &UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
