// Package token implements the signed-token codec used for both access and
// refresh credentials. Tokens are HS256 JWTs carrying the user id, role and a
// type discriminator so a refresh token can never pass for an access token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/userhub/user-api/internal/core/domain"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	// Fixed policy constants, not runtime-configurable.
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the payload embedded in every issued token.
type Claims struct {
	UserID    int64  `json:"id"`
	Role      string `json:"role"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a single symmetric key. The key is
// supplied at construction so tests can run with per-test secrets.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// IssueAccess mints a short-lived access token for the given user.
func (c *Codec) IssueAccess(userID int64, role string) (string, error) {
	return c.issue(userID, role, TypeAccess, AccessTokenTTL)
}

// IssueRefresh mints a long-lived refresh token. Refresh tokens carry a jti
// so a server-side registry can track individual tokens.
func (c *Codec) IssueRefresh(userID int64, role string) (string, error) {
	return c.issue(userID, role, TypeRefresh, RefreshTokenTTL)
}

func (c *Codec) issue(userID int64, role, tokenType string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the decoded claims.
// Failure kinds are distinguished for logging; callers collapse all of them
// to an unauthorized response.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if !domain.ValidRole(claims.Role) {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
