// Package auth issues and verifies the signed bearer tokens and password hashes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SAP-F-2025/attendance-service/internal/models"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingSecret = errors.New("jwt signing secret is required")
)

// Claims is the JWT payload. The subject is the account id.
type Claims struct {
	Role      models.Role `json:"role"`
	Name      string      `json:"name,omitempty"`
	TeacherID string      `json:"teacherId,omitempty"`
	jwt.RegisteredClaims
}

// AccountID returns the token subject.
func (c *Claims) AccountID() string {
	return c.Subject
}

func (c *Claims) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

// TokenManager signs and verifies HS256 tokens for one issuer.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, issuer string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the user and returns it with its expiry.
func (m *TokenManager) Issue(user *models.PublicUser) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		Role: user.Role,
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if user.TeacherID != nil {
		claims.TeacherID = *user.TeacherID
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

// Parse validates signature, method, expiry and issuer.
func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" || !claims.Role.IsValid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
