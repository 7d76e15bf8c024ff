package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/behnamfe76/finance-service/internal/auth"
	"github.com/behnamfe76/finance-service/internal/config"
	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/events"
	"github.com/behnamfe76/finance-service/internal/repository"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

// Credentials is a freshly minted access/refresh pair.
type Credentials struct {
	Access           string
	AccessExpiresAt  time.Time
	Refresh          string
	RefreshExpiresAt time.Time
}

// RegisterInput describes a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	IsStaff  bool
}

// AuthService coordinates registration, login and the refresh/logout flows.
type AuthService struct {
	users       repository.UserRepository
	tokens      *auth.TokenManager
	hasher      *auth.PasswordHasher
	revocations auth.RevocationStore
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	Revocations auth.RevocationStore
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	// Tokens overrides the manager built from config.
	Tokens *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	tokens := deps.Tokens
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTTL(), cfg.RefreshTTL(), auth.WithIssuer(cfg.Issuer))
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	revocations := deps.Revocations
	if revocations == nil {
		revocations = auth.NewMemoryRevocationStore()
	}
	return &AuthService{
		users:       deps.UserRepo,
		tokens:      tokens,
		hasher:      auth.NewPasswordHasher(cfg.BcryptCost),
		revocations: revocations,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Register creates a new active user.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"field": "username"})
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	if input.Email != "" {
		if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"field": "email"})
		} else if !apperrors.IsNotFound(err) {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsStaff:      input.IsStaff,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeError(err, "user")
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Username: user.Username,
		Email:    user.Email,
	}))
	return user, nil
}

// Login checks the password for a username or email and mints both credentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, *Credentials, error) {
	user, err := s.lookupLogin(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.hasher.CompareMissing(password)
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, nil, apperrors.NewUnauthorized("user account is disabled")
	}

	creds, err := s.issue(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, creds, nil
}

func (s *AuthService) lookupLogin(ctx context.Context, identifier string) (*domain.User, error) {
	if identifier == "" {
		return nil, pgx.ErrNoRows
	}
	user, err := s.users.GetByUsername(ctx, identifier)
	if err == nil || !apperrors.IsNotFound(err) || !strings.Contains(identifier, "@") {
		return user, err
	}
	return s.users.GetByEmail(ctx, identifier)
}

func (s *AuthService) issue(userID int64) (*Credentials, error) {
	access, accessClaims, err := s.tokens.IssueAccess(userID)
	if err != nil {
		return nil, err
	}
	refresh, refreshClaims, err := s.tokens.IssueRefresh(userID)
	if err != nil {
		return nil, err
	}
	return &Credentials{
		Access:           access,
		AccessExpiresAt:  accessClaims.ExpiresAt.Time,
		Refresh:          refresh,
		RefreshExpiresAt: refreshClaims.ExpiresAt.Time,
	}, nil
}

// Refresh exchanges a valid refresh credential for a new access credential.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", time.Time{}, apperrors.NewUnauthorizedReason(string(auth.ReasonInvalidToken), "refresh token missing")
	}

	claims, err := s.tokens.Verify(refreshToken)
	if err == nil {
		err = claims.Require(domain.TokenKindRefresh)
	}
	if err != nil {
		return "", time.Time{}, apperrors.WrapUnauthorized(err, string(auth.ReasonFor(err)), "refresh token rejected")
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("revocation lookup failed; accepting refresh token", zap.Error(err))
	}
	if revoked {
		return "", time.Time{}, apperrors.WrapUnauthorized(auth.ErrTokenRevoked, string(auth.ReasonFor(auth.ErrTokenRevoked)), "refresh token revoked")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil && !apperrors.IsNotFound(err) {
		return "", time.Time{}, err
	}
	if user == nil || !user.IsActive {
		return "", time.Time{}, apperrors.NewUnauthorizedReason(string(auth.ReasonUserNotFound), "user not found")
	}

	access, accessClaims, err := s.tokens.IssueAccess(user.ID)
	if err != nil {
		return "", time.Time{}, err
	}
	return access, accessClaims.ExpiresAt.Time, nil
}

// Logout revokes the refresh credential when one can be identified. It never fails.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) {
	if strings.TrimSpace(refreshToken) == "" {
		return
	}
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil || claims.Require(domain.TokenKindRefresh) != nil {
		return
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.Warn("refresh token revocation failed", zap.Int64("user_id", claims.UserID), zap.Error(err))
	}
}

// CreateUser is the staff-only variant of Register that may grant staff status.
func (s *AuthService) CreateUser(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return s.Register(ctx, input)
}

// ListUsers pages through all users.
func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, limit, offset)
}

// GetUser loads a single user.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return user, nil
}
