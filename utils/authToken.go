package utils

import (
	"DentalCenter/models"
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

const (
	// Set expiration time for access tokens.
	AccessTokenExpiry = 24 * time.Hour
)

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrInsufficientRoles = errors.New("insufficient permissions")
)

// TokenClaims struct represents the data in the token.
type TokenClaims struct {
	UserID    string      `json:"userId"`
	Role      models.Role `json:"role"`
	Email     string      `json:"email"`
	PatientID string      `json:"patientId,omitempty"`
	Expiry    time.Time   `json:"expiry"`
}

// User rebuilds the authenticated identity carried by the token.
func (c TokenClaims) User() models.User {
	return models.User{ID: c.UserID, Role: c.Role, Email: c.Email, PatientID: c.PatientID}
}

// TokenMaker issues and verifies PASETO v2 local tokens.
type TokenMaker struct {
	symmetricKey []byte
	expiry       time.Duration
	now          func() time.Time
}

// NewTokenMaker ensures the key has the correct length (32 bytes).
func NewTokenMaker(symmetricKey string) (*TokenMaker, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("SYMMETRIC_KEY must be 32 bytes long. Current length: %d", len(symmetricKey))
	}
	return &TokenMaker{symmetricKey: []byte(symmetricKey), expiry: AccessTokenExpiry, now: time.Now}, nil
}

// GenerateAccessToken generates the access token for a user.
func (m *TokenMaker) GenerateAccessToken(user models.User) (string, error) {
	claims := TokenClaims{
		UserID:    user.ID,
		Role:      user.Role,
		Email:     user.Email,
		PatientID: user.PatientID,
		Expiry:    m.now().Add(m.expiry),
	}

	token, err := paseto.NewV2().Encrypt(m.symmetricKey, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken validates the given token string and checks for expiry and required roles.
func (m *TokenMaker) ValidateToken(tokenString string, requiredRoles ...models.Role) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, m.symmetricKey, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	if m.now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}

	// If no roles are required, any valid token is acceptable
	if len(requiredRoles) == 0 {
		return &claims, nil
	}
	for _, role := range requiredRoles {
		if claims.Role == role {
			return &claims, nil
		}
	}
	return nil, ErrInsufficientRoles
}
