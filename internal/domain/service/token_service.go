package service

import (
	"github.com/golang-jwt/jwt/v5"

	"bookly/internal/domain/entity"
)

// TokenKind distinguishes the three token classes issued by the system.
// Every verification site must name the kind it expects; a token of one
// kind is never accepted where another is required.
type TokenKind string

const (
	// KindAccess is the short-lived token presented on API calls.
	KindAccess TokenKind = "access"
	// KindRefresh is the long-lived token exchanged for new pairs.
	KindRefresh TokenKind = "refresh"
	// KindPasswordReset is the single-purpose token for password resets.
	KindPasswordReset TokenKind = "password-reset"
)

// Claims defines the custom claims carried by every token.
// Subject duplicates UserID as a string and ID (jti) is unique per issuance.
type Claims struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token of the given kind for a user.
	Issue(user *entity.User, kind TokenKind) (string, error)

	// IssuePair creates a fresh access and refresh token for a user.
	IssuePair(user *entity.User) (accessToken string, refreshToken string, err error)

	// Verify checks the signature, expiry and kind of a token and returns
	// its claims. Any failure collapses into a single invalid-token error.
	Verify(tokenString string, kind TokenKind) (*Claims, error)
}
