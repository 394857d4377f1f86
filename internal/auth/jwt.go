// Package auth issues and verifies the admin access tokens and hashes
// admin passwords.
//
// Tokens are HS256 JWTs carrying the user's id and username. They are
// self-contained: verifying one needs only the signing secret, never a
// database lookup, so the server keeps no session state.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "personal-site"

// minSecretLength guards against empty or trivially short signing secrets.
const minSecretLength = 16

// Identity is what a valid token proves about its bearer.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// TokenService signs and verifies access tokens.
//
// A zero ttl issues tokens without an "exp" claim, which then never expire.
// With a positive ttl every token carries "exp" and tokens without one are
// rejected.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. The secret must be at least 16
// characters.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("auth: JWT secret must be at least %d characters", minSecretLength)
	}
	if ttl < 0 {
		return nil, errors.New("auth: token TTL must not be negative")
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL reports the configured token lifetime; zero means no expiry.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

type claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate signs a token for the given identity.
func (s *TokenService) Generate(id Identity) (string, error) {
	return s.generate(id, s.ttl)
}

func (s *TokenService) generate(id Identity, ttl time.Duration) (string, error) {
	now := s.now()

	c := claims{
		UserID:   id.UserID,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl != 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate verifies the signature, algorithm, issuer and (when present)
// expiry of tokenStr and returns the identity it carries.
func (s *TokenService) Validate(tokenStr string) (Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	}
	if s.ttl > 0 {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, errors.New("auth: token expired")
		}
		return Identity{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("auth: invalid token claims")
	}
	if c.UserID == 0 || c.Username == "" {
		return Identity{}, errors.New("auth: token has no identity")
	}

	return Identity{UserID: c.UserID, Username: c.Username}, nil
}
