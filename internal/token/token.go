// Package token issues and verifies the bearer tokens used by the API.
// Tokens are stateless HS256 JWTs carrying the subject's identity and a role
// tag distinguishing players from the admin console.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role values carried in token claims
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongRole    = errors.New("token has wrong role")
)

// Claims is the JWT payload for both user and admin tokens
type Claims struct {
	UserID      int64  `json:"uid,omitempty"`
	AdminID     int64  `json:"aid,omitempty"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared HMAC secret
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager. ttl is the fixed token lifetime
// (7 days in the deployed configuration).
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < 16 {
		return nil, errors.New("token: secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("token: ttl must be positive")
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// IssueUser creates a signed token for a player account
func (m *Manager) IssueUser(userID int64, username, email, phoneNumber string) (string, error) {
	return m.sign(Claims{
		UserID:      userID,
		Username:    username,
		Email:       email,
		PhoneNumber: phoneNumber,
		Role:        RoleUser,
	})
}

// IssueAdmin creates a signed token for the admin console
func (m *Manager) IssueAdmin(adminID int64, username string) (string, error) {
	return m.sign(Claims{
		AdminID:  adminID,
		Username: username,
		Role:     RoleAdmin,
	})
}

func (m *Manager) sign(c Claims) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		Issuer:    "campuswordle",
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token: signing failed: %w", err)
	}
	return signed, nil
}

// Verify parses a token string and returns its claims. Expiry is checked by
// the parser; an expired or tampered token returns ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRole parses a token and additionally requires the given role
func (m *Manager) VerifyRole(tokenString, role string) (*Claims, error) {
	claims, err := m.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != role {
		return nil, ErrWrongRole
	}
	return claims, nil
}
