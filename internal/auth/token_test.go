package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/finance-service/internal/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour, WithIssuer("finance"))

	token, issued, err := tm.IssueAccess(42)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, domain.TokenKindAccess, claims.Kind)
	assert.Equal(t, "finance", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
	assert.NoError(t, claims.Require(domain.TokenKindAccess))
	assert.ErrorIs(t, claims.Require(domain.TokenKindRefresh), ErrWrongTokenKind)
}

func TestVerifyExpired(t *testing.T) {
	past := NewTokenManager("secret", time.Minute, time.Hour, WithClock(fixedClock(time.Now().Add(-2*time.Hour))))
	token, _, err := past.IssueAccess(1)
	require.NoError(t, err)

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyExpiredWinsOverBadSignature(t *testing.T) {
	past := NewTokenManager("other-secret", time.Minute, time.Hour, WithClock(fixedClock(time.Now().Add(-2*time.Hour))))
	token, _, err := past.IssueAccess(1)
	require.NoError(t, err)

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongKey(t *testing.T) {
	other := NewTokenManager("other-secret", time.Minute, time.Hour)
	token, _, err := other.IssueAccess(1)
	require.NoError(t, err)

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
	assert.Equal(t, ReasonInvalidToken, ReasonFor(err))
}

func TestVerifyMalformed(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)
	for _, raw := range []string{"", "   ", "not-a-jwt", "a.b.c"} {
		_, err := tm.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformedToken, raw)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":        "1",
		"user_id":    1,
		"token_type": "access",
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	tm := NewTokenManager("secret", time.Minute, time.Hour)
	_, err = tm.Verify(token)
	assert.Error(t, err)
	assert.Equal(t, ReasonInvalidToken, ReasonFor(err))
}

func TestVerifyRejectsFutureIssuedAt(t *testing.T) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        "1",
		"user_id":    1,
		"token_type": "access",
		"iat":        now.Add(2 * time.Hour).Unix(),
		"exp":        now.Add(3 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	tm := NewTokenManager("secret", time.Minute, time.Hour, WithClock(fixedClock(now)))
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
	assert.Equal(t, ReasonInvalidToken, ReasonFor(err))
}

func TestValidateClaimsInvariants(t *testing.T) {
	now := time.Now()
	base := func() *Claims {
		return &Claims{UserID: 5, Kind: domain.TokenKindAccess, RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "5",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		}}
	}
	assert.NoError(t, validateClaims(base()))

	sameInstant := base()
	sameInstant.ExpiresAt = sameInstant.IssuedAt
	assert.ErrorIs(t, validateClaims(sameInstant), ErrInvalidClaims)

	missingIat := base()
	missingIat.IssuedAt = nil
	assert.ErrorIs(t, validateClaims(missingIat), ErrInvalidClaims)

	mismatch := base()
	mismatch.UserID = 6
	assert.ErrorIs(t, validateClaims(mismatch), ErrInvalidClaims)

	noUserID := base()
	noUserID.UserID = 0
	require.NoError(t, validateClaims(noUserID))
	assert.Equal(t, int64(5), noUserID.UserID)

	badSubject := base()
	badSubject.Subject = "abc"
	assert.ErrorIs(t, validateClaims(badSubject), ErrInvalidClaims)
}

func TestVerifyRequiresIssuerWhenConfigured(t *testing.T) {
	issuer := NewTokenManager("secret", time.Minute, time.Hour, WithIssuer("someone-else"))
	token, _, err := issuer.IssueAccess(3)
	require.NoError(t, err)

	tm := NewTokenManager("secret", time.Minute, time.Hour, WithIssuer("finance"))
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestSignValidatesInput(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)

	_, _, err := tm.Sign(TokenPayload{UserID: 0, Kind: domain.TokenKindAccess}, time.Minute)
	assert.Error(t, err)
	_, _, err = tm.Sign(TokenPayload{UserID: 1, Kind: "other"}, time.Minute)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
	_, _, err = tm.Sign(TokenPayload{UserID: 1, Kind: domain.TokenKindAccess}, 0)
	assert.Error(t, err)
}

func TestRefreshTokenCarriesKind(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)
	token, issued, err := tm.IssueRefresh(9)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt.Time, 2*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenKindRefresh, claims.Kind)
}
