// Package auth mints and validates the signed, time-limited bearer tokens the
// service hands out after registration and login.
package auth

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/twit2/t2-auth/internal/common"
)

// Claims carried by every session token: the registered claim set plus a
// fixed scope marker.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

// TokenService signs and verifies session tokens with a process-wide key.
// The key is set once at construction and never mutated, so concurrent
// issuance and verification need no locking.
type TokenService struct {
	key      []byte
	validity time.Duration
}

// NewTokenService copies the key, so the caller may wipe its own buffer
// afterwards.
func NewTokenService(key []byte, validity time.Duration) *TokenService {
	k := make([]byte, len(key))
	copy(k, key)
	return &TokenService{key: k, validity: validity}
}

// LoadKey returns the signing key for this process: the configured
// hex-encoded key when one is set (so multiple instances can share material),
// otherwise a fresh random key only this instance can verify.
func LoadKey(hexKey string) ([]byte, error) {
	if hexKey == "" {
		return common.GenerateRandByteArray(64), nil
	}

	key, err := hex.DecodeString(hexKey)
	if err != nil {
		// hex.DecodeString returns the bytes decoded before the error
		common.WipeByteArray(key)
		return nil, fmt.Errorf("invalid signing key: %w", err)
	}
	return key, nil
}

// Issue mints a token binding subject = ownerID, expiring after the
// configured validity window.
func (t *TokenService) Issue(ownerID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    common.TokenIssuer,
			Subject:   ownerID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.validity)),
		},
		Scope: common.TokenScope,
	})

	tokenString, err := token.SignedString(t.key)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the subject. Every failure
// mode (malformed, expired, bad signature) comes back as ErrorInvalidToken:
// callers treat it as access denied, never as a system error.
func (t *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.key, nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrorInvalidToken
	}

	return claims.Subject, nil
}
