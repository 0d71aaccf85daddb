// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bookly/config"
	"bookly/internal/domain/entity"
	domainerrors "bookly/internal/domain/errors"
	"bookly/internal/domain/service"
)

// Fallback lifetimes when the configured value is empty or unparseable.
const (
	defaultAccessTTL        = 15 * time.Minute
	defaultRefreshTTL       = 7 * 24 * time.Hour
	defaultPasswordResetTTL = 30 * time.Minute
)

// jwtService is a concrete implementation of the TokenService interface.
// All three token kinds are signed with RS256 over the KeyProvider's pair.
type jwtService struct {
	keys service.KeyProvider
	cfg  *config.Config
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config, keys service.KeyProvider) service.TokenService {
	return &jwtService{
		keys: keys,
		cfg:  cfg,
	}
}

// Issue creates a signed token of the given kind for a user.
// Every issuance carries a fresh jti so otherwise identical tokens remain
// distinguishable in logs.
func (s *jwtService) Issue(user *entity.User, kind service.TokenKind) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role.String(),
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime(kind))),
		},
	}

	pemKey, err := s.keys.PrivateKey()
	if err != nil {
		// Key provider errors carry their own operator-facing kinds.
		return "", err
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pemKey))
	if err != nil {
		return "", domainerrors.ErrTokenSigningFailed
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
	if err != nil {
		return "", domainerrors.ErrTokenSigningFailed
	}

	return signed, nil
}

// IssuePair creates a fresh access and refresh token for a user.
func (s *jwtService) IssuePair(user *entity.User) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.Issue(user, service.KindAccess)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.Issue(user, service.KindRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Verify checks a token's signature, expiry and kind and returns its claims.
// Bad signature, expiry, malformed payload and kind mismatch all collapse
// into ErrInvalidToken so a caller cannot probe why a token was rejected.
func (s *jwtService) Verify(tokenString string, kind service.TokenKind) (*service.Claims, error) {
	pemKey, err := s.keys.PublicKey()
	if err != nil {
		return nil, err
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		// Unparseable key material is an operator problem, not a token problem.
		return nil, domainerrors.ErrKeyLoadFailed
	}

	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrInvalidToken
	}

	// The payload is attacker-supplied until proven otherwise: every field
	// the flows rely on must be present and well-formed.
	if claims.UserID <= 0 || claims.Email == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, domainerrors.ErrInvalidToken
	}
	if !entity.Role(claims.Role).IsValid() {
		return nil, domainerrors.ErrInvalidToken
	}
	if claims.TokenType != string(kind) {
		return nil, domainerrors.ErrInvalidToken
	}

	return claims, nil
}

// lifetime resolves the configured lifetime for a token kind.
func (s *jwtService) lifetime(kind service.TokenKind) time.Duration {
	var configured string
	var fallback time.Duration

	switch kind {
	case service.KindAccess:
		configured, fallback = s.cfg.JWT.ExpiresIn, defaultAccessTTL
	case service.KindRefresh:
		configured, fallback = s.cfg.JWT.RefreshExpiresIn, defaultRefreshTTL
	case service.KindPasswordReset:
		configured, fallback = s.cfg.JWT.PasswordResetExpiresIn, defaultPasswordResetTTL
	default:
		fallback = defaultAccessTTL
	}

	if d, ok := parseLifetime(configured); ok {
		return d
	}

	return fallback
}

// parseLifetime interprets a configured lifetime string: a bare integer is
// seconds, a trailing "d" means whole days, anything else goes through
// time.ParseDuration. Non-positive results are rejected.
func parseLifetime(raw string) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(raw); err == nil {
		if seconds <= 0 {
			return 0, false
		}

		return time.Duration(seconds) * time.Second, true
	}

	if days, found := strings.CutSuffix(raw, "d"); found {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, false
		}

		return time.Duration(n) * 24 * time.Hour, true
	}

	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d, true
	}

	return 0, false
}
