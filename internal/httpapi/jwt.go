package httpapi

import (
	"crypto/rand"
	"log"
	"time"

	"rfid-access/backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 24 * time.Hour

// TokenIssuer signs and verifies session tokens. The key is fixed at
// construction; there is no rotation and no server-side session state.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
}

func NewTokenIssuer(secret string) *TokenIssuer {
	if secret != "" {
		return &TokenIssuer{key: []byte(secret), ttl: tokenTTL}
	}

	// Generate a random key if no secret is configured. Tokens won't
	// survive a restart.
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate JWT key: " + err.Error())
	}
	log.Printf("no JWT secret configured, using ephemeral signing key")
	return &TokenIssuer{key: b, ttl: tokenTTL}
}

func (ti *TokenIssuer) Issue(accountID string, role model.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": string(role),
		"exp":  time.Now().Add(ti.ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.key)
}

// Verify parses and validates a token. Malformed, badly signed and
// expired tokens all come back as a single opaque error.
func (ti *TokenIssuer) Verify(tokenStr string) (accountID string, role model.Role, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return ti.key, nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", jwt.ErrSignatureInvalid
	}
	sub, _ := claims["sub"].(string)
	roleStr, _ := claims["role"].(string)
	return sub, model.Role(roleStr), nil
}
