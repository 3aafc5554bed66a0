package httpapi

import (
	"testing"
	"time"

	"rfid-access/backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Issue("account-1", model.RoleAdmin)
	require.NoError(t, err)

	id, role, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "account-1", id)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	other := NewTokenIssuer("other-secret")

	token, err := other.Issue("account-1", model.RoleUser)
	require.NoError(t, err)

	_, _, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	claims := jwt.MapClaims{
		"sub":  "account-1",
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = issuer.Verify(expired)
	assert.Error(t, err)
}

func TestVerifyRejectsMalformedToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	_, _, err := issuer.Verify("not-a-token")
	assert.Error(t, err)
}

func TestEphemeralKeyWhenNoSecret(t *testing.T) {
	a := NewTokenIssuer("")
	b := NewTokenIssuer("")

	token, err := a.Issue("account-1", model.RoleUser)
	require.NoError(t, err)

	// The issuing instance accepts its own token.
	_, _, err = a.Verify(token)
	assert.NoError(t, err)

	// A different instance generated a different key.
	_, _, err = b.Verify(token)
	assert.Error(t, err)
}
