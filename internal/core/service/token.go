// Package service provides domain services for GridMatch.
//
// TokenService issues and validates signed session tokens.
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"

	"github.com/yndnr/gridmatch-go/internal/core/domain"
)

// tokenKeySalt is the fixed application salt for deriving the signing
// key from the configured secret. Changing it invalidates all issued
// tokens.
const tokenKeySalt = "gridmatch-token-v1"

// TokenService signs and verifies session tokens.
//
// Tokens are HS256 JWTs binding a user to a lobby. Verification is
// constant-time (HMAC comparison inside the JWT library), so token
// probing reveals nothing about partial matches.
type TokenService struct {
	key    []byte
	issuer string
	ttl    time.Duration
	leeway time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// TokenServiceConfig holds configuration for TokenService.
type TokenServiceConfig struct {
	// Secret is the signing secret. Required.
	Secret string

	// Issuer is the "iss" claim value (default: "gridmatch").
	Issuer string

	// TTL is the token lifetime (default: 24h).
	TTL time.Duration

	// Leeway is the clock skew tolerance for expiry checks (default: 30s).
	Leeway time.Duration
}

// DefaultTokenServiceConfig returns default configuration without a secret.
func DefaultTokenServiceConfig() *TokenServiceConfig {
	return &TokenServiceConfig{
		Issuer: "gridmatch",
		TTL:    24 * time.Hour,
		Leeway: 30 * time.Second,
	}
}

// NewTokenService creates a new TokenService.
// The signing key is derived from config.Secret with Argon2id, so a
// low-entropy secret still yields a uniform 256-bit key.
func NewTokenService(config *TokenServiceConfig) (*TokenService, error) {
	if config == nil || config.Secret == "" {
		return nil, domain.ErrMissingArgument.WithDetails("token secret is required")
	}

	issuer := config.Issuer
	if issuer == "" {
		issuer = "gridmatch"
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	leeway := config.Leeway
	if leeway <= 0 {
		leeway = 30 * time.Second
	}

	return &TokenService{
		key:    argon2.IDKey([]byte(config.Secret), []byte(tokenKeySalt), 1, 64*1024, 4, 32),
		issuer: issuer,
		ttl:    ttl,
		leeway: leeway,
		now:    time.Now,
	}, nil
}

// sessionClaims is the JWT claim set for a session token.
type sessionClaims struct {
	UserID    string `json:"uid"`
	LobbyCode string `json:"lob"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given session.
// Returns the compact token string and the claims it carries.
func (s *TokenService) Issue(sess *domain.Session) (string, *domain.TokenClaims, error) {
	// 1. Validate input
	if sess == nil {
		return "", nil, domain.ErrMissingArgument.WithDetails("session is required")
	}
	if sess.ID == "" || sess.UserID == "" || sess.LobbyCode == "" {
		return "", nil, domain.ErrInvalidArgument.WithDetails("session is missing identity fields")
	}

	// 2. Build the claim set
	now := s.now()
	expires := now.Add(s.ttl)
	claims := &sessionClaims{
		UserID:    sess.UserID,
		LobbyCode: sess.LobbyCode,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sess.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	// 3. Sign
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", nil, domain.ErrInternalServer.WithCause(err)
	}

	// The session record mirrors its credential's expiry.
	sess.ExpiresAt = expires.UnixMilli()

	return signed, &domain.TokenClaims{
		UserID:    sess.UserID,
		SessionID: sess.ID,
		LobbyCode: sess.LobbyCode,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: expires.UnixMilli(),
	}, nil
}

// Validate verifies a token's signature and expiry and returns its claims.
// The caller still has to check that the named lobby and session exist.
func (s *TokenService) Validate(tokenString string) (*domain.TokenClaims, error) {
	// 1. Cheap structural check before touching the parser
	if !domain.ValidateTokenFormat(tokenString) {
		return nil, domain.ErrTokenMalformed
	}

	// 2. Parse and verify signature
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, mapJWTError(err)
	}

	// 3. Map to domain claims and check completeness
	out := &domain.TokenClaims{
		UserID:    claims.UserID,
		SessionID: claims.Subject,
		LobbyCode: claims.LobbyCode,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UnixMilli()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UnixMilli()
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}

	return out, nil
}

// mapJWTError translates JWT library errors to domain errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired.WithCause(err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed.WithCause(err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return domain.ErrTokenInvalid.WithDetails("token not valid yet").WithCause(err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenInvalid.WithDetails("signature mismatch").WithCause(err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return domain.ErrTokenInvalid.WithDetails("unknown issuer").WithCause(err)
	default:
		return domain.ErrTokenInvalid.WithCause(err)
	}
}
