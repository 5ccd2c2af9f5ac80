package jwt

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid is the single failure outcome of validation. Malformed
// tokens, bad signatures, issuer/audience mismatches and expired tokens all
// collapse into it so callers cannot tell the reasons apart.
var ErrTokenInvalid = errors.New("token is invalid")

// DefaultAccessTokenMinutes is the access token lifetime when the config
// does not override it.
const DefaultAccessTokenMinutes = 30

// refreshTokenBytes is the entropy of an opaque refresh token.
const refreshTokenBytes = 64

// Claims represents the access token claims. The subject registered claim
// carries the username, uid the account id.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Username returns the subject claim.
func (c *Claims) Username() string {
	return c.Subject
}

// GenerateAccessToken signs a new access token for the account. Every token
// gets a fresh random jti and an absolute expiry of now + expiryMinutes.
func GenerateAccessToken(userID, username, role, secret, issuer, audience string, expiryMinutes int) (string, error) {
	if expiryMinutes <= 0 {
		expiryMinutes = DefaultAccessTokenMinutes
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken verifies signature, issuer, audience and expiry.
// Any failure returns ErrTokenInvalid.
func ValidateAccessToken(tokenString, secret, issuer, audience string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// NewRefreshToken generates an opaque refresh token: 64 bytes of
// cryptographically secure randomness, base64-encoded. It carries no
// structure and must never be parsed by callers.
func NewRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// RefreshTokenExpiry returns the absolute expiry for a refresh token issued now.
func RefreshTokenExpiry(days int) time.Time {
	return time.Now().Add(time.Duration(days) * 24 * time.Hour)
}
