package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/egotransfert/auth-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers signature mismatch, malformed structure and expiry.
// Callers always receive this (wrapped) rather than a library-specific error.
var ErrInvalidToken = errors.New("invalid token")

// Claims holds the JWT payload fields. UserID is empty on admin-variant
// tokens, which carry only the role.
type Claims struct {
	UserID string `json:"userId,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs. Access and refresh tokens use
// separate secrets so one cannot be presented in place of the other.
type Provider struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// SignAccess issues a short-lived access token carrying {userId, role}.
func (p *Provider) SignAccess(userID, role string) (string, error) {
	return p.sign(userID, role, p.accessSecret, p.accessTTL)
}

// SignRefresh issues a long-lived refresh token with the same payload shape.
func (p *Provider) SignRefresh(userID, role string) (string, error) {
	return p.sign(userID, role, p.refreshSecret, p.refreshTTL)
}

// SignAdminAccess issues an access token carrying only the role claim.
func (p *Provider) SignAdminAccess(role string) (string, error) {
	return p.sign("", role, p.accessSecret, p.accessTTL)
}

// SignAdminRefresh issues a refresh token carrying only the role claim.
func (p *Provider) SignAdminRefresh(role string) (string, error) {
	return p.sign("", role, p.refreshSecret, p.refreshTTL)
}

func (p *Provider) sign(userID, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccess validates an access token's signature and expiry.
func (p *Provider) VerifyAccess(tokenStr string) (*Claims, error) {
	return verify(tokenStr, p.accessSecret)
}

// VerifyRefresh validates a refresh token's signature and expiry.
func (p *Provider) VerifyRefresh(tokenStr string) (*Claims, error) {
	return verify(tokenStr, p.refreshSecret)
}

func verify(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
