package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/behnamfe76/finance-service/internal/domain"
)

// TokenPayload is what callers ask to have signed.
type TokenPayload struct {
	UserID int64
	Kind   domain.TokenKind
}

// TokenCodec signs and verifies credentials without tying callers to a JWT library.
type TokenCodec interface {
	Sign(payload TokenPayload, ttl time.Duration) (string, *Claims, error)
	Verify(token string) (*Claims, error)
}

// Claims describes JWT payload.
type Claims struct {
	UserID int64            `json:"user_id"`
	Kind   domain.TokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// Require checks the claims were issued for the given kind.
func (c *Claims) Require(kind domain.TokenKind) error {
	if c == nil || c.Kind != kind {
		return ErrWrongTokenKind
	}
	return nil
}

// TokenManager handles issuing and validating HS256 JWT tokens.
type TokenManager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if now != nil {
			tm.now = now
		}
	}
}

// WithIssuer sets the iss claim written and required on tokens.
func WithIssuer(issuer string) TokenOption {
	return func(tm *TokenManager) {
		tm.issuer = strings.TrimSpace(issuer)
	}
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration, opts ...TokenOption) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	tm := &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// AccessTTL returns the lifetime of access credentials.
func (tm *TokenManager) AccessTTL() time.Duration { return tm.accessTTL }

// RefreshTTL returns the lifetime of refresh credentials.
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refreshTTL }

// IssueAccess signs an access credential with the configured lifetime.
func (tm *TokenManager) IssueAccess(userID int64) (string, *Claims, error) {
	return tm.Sign(TokenPayload{UserID: userID, Kind: domain.TokenKindAccess}, tm.accessTTL)
}

// IssueRefresh signs a refresh credential with the configured lifetime.
func (tm *TokenManager) IssueRefresh(userID int64) (string, *Claims, error) {
	return tm.Sign(TokenPayload{UserID: userID, Kind: domain.TokenKindRefresh}, tm.refreshTTL)
}

// Sign builds and signs a JWT for the payload.
func (tm *TokenManager) Sign(payload TokenPayload, ttl time.Duration) (string, *Claims, error) {
	if payload.UserID <= 0 {
		return "", nil, errors.New("user id is required")
	}
	if payload.Kind != domain.TokenKindAccess && payload.Kind != domain.TokenKindRefresh {
		return "", nil, ErrWrongTokenKind
	}
	if ttl <= 0 {
		return "", nil, errors.New("ttl must be greater than zero")
	}

	now := tm.now().UTC().Truncate(time.Second)
	claims := &Claims{
		UserID: payload.UserID,
		Kind:   payload.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Subject:   strconv.FormatInt(payload.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, claims, nil
}

// Verify validates the token and returns its claims. Expiry is checked before the
// signature so an expired credential is always reported as expired.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return nil, ErrMalformedToken
	}

	unverified := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, unverified); err != nil {
		return nil, ErrMalformedToken
	}
	if unverified.ExpiresAt != nil && !tm.now().Before(unverified.ExpiresAt.Time) {
		return nil, ErrExpiredToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(tm.now),
	}
	if tm.issuer != "" {
		opts = append(opts, jwt.WithIssuer(tm.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrSignatureInvalid
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidClaims, err)
		}
	}
	if !parsed.Valid {
		return nil, ErrInvalidClaims
	}
	if err := validateClaims(claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func validateClaims(claims *Claims) error {
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return fmt.Errorf("%w: timestamps missing", ErrInvalidClaims)
	}
	if !claims.ExpiresAt.Time.After(claims.IssuedAt.Time) {
		return fmt.Errorf("%w: expiry must follow issued-at", ErrInvalidClaims)
	}
	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || subjectID <= 0 {
		return fmt.Errorf("%w: subject missing", ErrInvalidClaims)
	}
	if claims.UserID == 0 {
		claims.UserID = subjectID
	}
	if claims.UserID != subjectID {
		return fmt.Errorf("%w: subject mismatch", ErrInvalidClaims)
	}
	return nil
}
