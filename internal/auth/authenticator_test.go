package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/behnamfe76/finance-service/internal/domain"
)

type stubCredentials struct {
	cookies map[string]string
	headers map[string]string
}

func (s stubCredentials) Cookie(name string) string { return s.cookies[name] }
func (s stubCredentials) Header(name string) string { return s.headers[name] }

func cookieCreds(token string) stubCredentials {
	return stubCredentials{cookies: map[string]string{AccessCookieName: token}}
}

func headerCreds(value string) stubCredentials {
	return stubCredentials{headers: map[string]string{"Authorization": value}}
}

type stubUsers struct {
	users map[int64]*domain.User
	err   error
}

func (s stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *TokenManager) {
	t.Helper()
	tm := NewTokenManager("secret", time.Minute, time.Hour)
	users := stubUsers{users: map[int64]*domain.User{
		1: {ID: 1, Username: "alice", Email: "alice@example.com", IsActive: true},
		2: {ID: 2, Username: "bob", IsStaff: true, IsActive: true},
		3: {ID: 3, Username: "carol", IsActive: false},
	}}
	return NewAuthenticator(tm, users), tm
}

func mustAccess(t *testing.T, tm *TokenManager, userID int64) string {
	t.Helper()
	token, _, err := tm.IssueAccess(userID)
	require.NoError(t, err)
	return token
}

func TestAuthenticateAnonymousWithoutCredentials(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	for _, src := range []stubCredentials{
		{},
		headerCreds(""),
		headerCreds("Basic dXNlcjpwYXNz"),
		headerCreds("Bearer "),
		cookieCreds("  "),
	} {
		outcome, err := a.Authenticate(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, OutcomeAnonymous, outcome.Kind)
		assert.Nil(t, outcome.Principal)
	}
}

func TestAuthenticateFromCookie(t *testing.T) {
	a, tm := newTestAuthenticator(t)

	outcome, err := a.Authenticate(context.Background(), cookieCreds(mustAccess(t, tm, 1)))
	require.NoError(t, err)
	require.Equal(t, OutcomeAuthenticated, outcome.Kind)
	assert.Equal(t, &Principal{UserID: 1, Username: "alice", Email: "alice@example.com"}, outcome.Principal)
}

func TestAuthenticateFromHeader(t *testing.T) {
	a, tm := newTestAuthenticator(t)

	outcome, err := a.Authenticate(context.Background(), headerCreds("bearer "+mustAccess(t, tm, 2)))
	require.NoError(t, err)
	require.Equal(t, OutcomeAuthenticated, outcome.Kind)
	assert.Equal(t, int64(2), outcome.Principal.UserID)
	assert.True(t, outcome.Principal.IsStaff)
}

func TestAuthenticateCookieTakesPrecedence(t *testing.T) {
	a, tm := newTestAuthenticator(t)
	src := stubCredentials{
		cookies: map[string]string{AccessCookieName: mustAccess(t, tm, 1)},
		headers: map[string]string{"Authorization": "Bearer " + mustAccess(t, tm, 2)},
	}

	outcome, err := a.Authenticate(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, OutcomeAuthenticated, outcome.Kind)
	assert.Equal(t, int64(1), outcome.Principal.UserID)

	// a bad cookie is not rescued by a good header
	src.cookies[AccessCookieName] = "garbage"
	outcome, err = a.Authenticate(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome.Kind)
	assert.Equal(t, ReasonInvalidToken, outcome.Reason)
}

func TestAuthenticateExpired(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	past := NewTokenManager("secret", time.Minute, time.Hour, WithClock(fixedClock(time.Now().Add(-time.Hour))))

	outcome, err := a.Authenticate(context.Background(), cookieCreds(mustAccess(t, past, 1)))
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome.Kind)
	assert.Equal(t, ReasonExpiredToken, outcome.Reason)
}

func TestAuthenticateWrongKey(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	other := NewTokenManager("different", time.Minute, time.Hour)

	outcome, err := a.Authenticate(context.Background(), headerCreds("Bearer "+mustAccess(t, other, 1)))
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome.Kind)
	assert.Equal(t, ReasonInvalidToken, outcome.Reason)
}

func TestAuthenticateRejectsRefreshCredential(t *testing.T) {
	a, tm := newTestAuthenticator(t)
	refresh, _, err := tm.IssueRefresh(1)
	require.NoError(t, err)

	outcome, err := a.Authenticate(context.Background(), cookieCreds(refresh))
	require.NoError(t, err)
	assert.Equal(t, OutcomeRejected, outcome.Kind)
	assert.Equal(t, ReasonInvalidToken, outcome.Reason)
}

func TestAuthenticateUnknownOrInactiveUser(t *testing.T) {
	a, tm := newTestAuthenticator(t)

	for _, id := range []int64{3, 99} {
		outcome, err := a.Authenticate(context.Background(), cookieCreds(mustAccess(t, tm, id)))
		require.NoError(t, err)
		assert.Equal(t, OutcomeRejected, outcome.Kind)
		assert.Equal(t, ReasonUserNotFound, outcome.Reason)
	}
}

func TestAuthenticateStoreFailure(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute, time.Hour)
	boom := errors.New("connection refused")
	a := NewAuthenticator(tm, stubUsers{err: boom})

	_, err := a.Authenticate(context.Background(), cookieCreds(mustAccess(t, tm, 1)))
	assert.ErrorIs(t, err, boom)
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "anonymous", OutcomeAnonymous.String())
	assert.Equal(t, "authenticated", OutcomeAuthenticated.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
}
