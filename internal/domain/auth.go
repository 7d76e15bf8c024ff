package domain

import "time"

// TokenKind differentiates access vs refresh credentials.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Token represents issued credential metadata.
type Token struct {
	ID        string
	UserID    int64
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}
