package auth

import "errors"

// Credential failures. Each maps to a rejection reason in the authenticator.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrExpiredToken     = errors.New("token expired")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrWrongTokenKind   = errors.New("unexpected token kind")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrSubjectNotFound  = errors.New("user not found")
	ErrTokenRevoked     = errors.New("token revoked")
)

// Reason is the machine-readable cause of a rejected credential.
type Reason string

const (
	ReasonInvalidToken Reason = "invalid_token"
	ReasonExpiredToken Reason = "expired_token"
	ReasonUserNotFound Reason = "user_not_found"
)

// ReasonFor classifies a verification error. Expired tokens are reported as such
// even when other checks would also fail.
func ReasonFor(err error) Reason {
	switch {
	case errors.Is(err, ErrExpiredToken):
		return ReasonExpiredToken
	case errors.Is(err, ErrSubjectNotFound):
		return ReasonUserNotFound
	default:
		return ReasonInvalidToken
	}
}
