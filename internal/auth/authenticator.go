package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/behnamfe76/finance-service/internal/domain"
	apperrors "github.com/behnamfe76/finance-service/pkg/util"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
	authorizationKey  = "Authorization"
	bearerScheme      = "Bearer"
)

// Principal represents the authenticated caller.
type Principal struct {
	UserID   int64
	Username string
	Email    string
	IsStaff  bool
}

// OutcomeKind enumerates the three authentication results.
type OutcomeKind int

const (
	OutcomeAnonymous OutcomeKind = iota
	OutcomeAuthenticated
	OutcomeRejected
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeRejected:
		return "rejected"
	default:
		return "anonymous"
	}
}

// Outcome is the per-request authentication decision. LookupErr is set when the
// user store failed; such a request is anonymous to public routes.
type Outcome struct {
	Kind      OutcomeKind
	Principal *Principal
	Reason    Reason
	Err       error
	LookupErr error
}

// Unresolved is the outcome for a credential whose subject could not be looked up.
func Unresolved(err error) Outcome { return Outcome{Kind: OutcomeAnonymous, LookupErr: err} }

// Anonymous is the outcome for requests carrying no credential.
func Anonymous() Outcome { return Outcome{Kind: OutcomeAnonymous} }

// Authenticated wraps a resolved principal.
func Authenticated(p *Principal) Outcome { return Outcome{Kind: OutcomeAuthenticated, Principal: p} }

// Rejected records why a presented credential was refused.
func Rejected(err error) Outcome {
	return Outcome{Kind: OutcomeRejected, Reason: ReasonFor(err), Err: err}
}

// CredentialSource exposes the parts of a request that may carry a token.
type CredentialSource interface {
	Cookie(name string) string
	Header(name string) string
}

// UserLookup resolves a subject id to a user record.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Authenticator turns request credentials into an Outcome. It holds no mutable state.
type Authenticator struct {
	tokens TokenCodec
	users  UserLookup
}

// NewAuthenticator constructs an authenticator.
func NewAuthenticator(tokens TokenCodec, users UserLookup) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// ExtractToken returns the access credential, preferring the cookie over the
// Authorization header. The header is consulted only when the cookie is absent.
func ExtractToken(src CredentialSource) (string, bool) {
	if token := strings.TrimSpace(src.Cookie(AccessCookieName)); token != "" {
		return token, true
	}
	return bearerToken(src.Header(authorizationKey))
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Authenticate evaluates the request credentials. The returned error is non-nil only
// when the user store fails for a reason other than a missing row.
func (a *Authenticator) Authenticate(ctx context.Context, src CredentialSource) (Outcome, error) {
	raw, ok := ExtractToken(src)
	if !ok {
		return Anonymous(), nil
	}

	claims, err := a.tokens.Verify(raw)
	if err != nil {
		return Rejected(err), nil
	}
	if err := claims.Require(domain.TokenKindAccess); err != nil {
		return Rejected(err), nil
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return Rejected(ErrSubjectNotFound), nil
		}
		return Outcome{}, fmt.Errorf("lookup user %d: %w", claims.UserID, err)
	}
	if user == nil || !user.IsActive {
		return Rejected(ErrSubjectNotFound), nil
	}

	return Authenticated(PrincipalFromUser(user)), nil
}

// PrincipalFromUser projects the fields a request needs from a user record.
func PrincipalFromUser(user *domain.User) *Principal {
	return &Principal{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsStaff:  user.IsStaff,
	}
}
