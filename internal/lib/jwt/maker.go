// Package jwt issues and parses the two stateless token kinds the
// service uses: short-lived access tokens carrying identity claims and
// long-lived refresh tokens carrying only the user id. Both are signed
// HS256 with a shared secret; anyone holding the secret can verify a
// token without any server-side lookup.
package jwt

import (
	"time"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
)

// Maker describes issuance and verification of access and refresh tokens.
type Maker interface {
	// GenerateAccessToken issues a short-lived token with the user's
	// id, email and role.
	GenerateAccessToken(user *models.User) (string, error)
	// GenerateRefreshToken issues a long-lived token carrying only
	// the user id.
	GenerateRefreshToken(userID string) (string, error)
	// ParseAccessToken validates signature and expiry and returns the
	// identity claims.
	ParseAccessToken(tokenStr string) (*AccessClaims, error)
	// ParseRefreshToken validates signature and expiry of a refresh token.
	ParseRefreshToken(tokenStr string) (*RefreshClaims, error)
}

// MakerImpl implements Maker with a shared signing secret and separate
// TTLs for the two token kinds.
type MakerImpl struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewMaker creates a MakerImpl. The secret comes from config and must
// never be logged; rotating it invalidates every issued token.
func NewMaker(secretKey string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}
