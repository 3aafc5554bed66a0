package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"rfid-access/backend/internal/config"
	"rfid-access/backend/internal/model"
	"rfid-access/backend/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestServer builds a server over the in-memory store.
func newTestServer(t *testing.T) (*Server, *memory.Store) {
	st := memory.NewStore()
	cfg := config.Config{
		JWTSecret:      "test-secret",
		ScanRatePerSec: 100,
		ScanBurst:      100,
	}
	s := NewServer(cfg, st)
	t.Cleanup(s.Close)
	return s, st
}

func doRequest(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, s *Server, name, email, password string) (string, model.Account) {
	t.Helper()

	rec := doRequest(t, s, http.MethodPost, "/api/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp authResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Token, resp.User
}

// newAdmin seeds an admin account directly in the store and issues it a
// token, the way the deployment bootstrap does.
func newAdmin(t *testing.T, s *Server, st *memory.Store, email string) (string, model.Account) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Admin-pass-1"), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin, err := st.CreateAccount(context.Background(), model.Account{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Status:       model.StatusActive,
	})
	require.NoError(t, err)

	token, err := s.issuer.Issue(admin.ID, admin.Role)
	require.NoError(t, err)
	return token, admin
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestUnmatchedRouteReturnsJSON404(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())
}

func TestProfileRequiresToken(t *testing.T) {
	s, _ := newTestServer(t)

	// No token at all: 401.
	rec := doRequest(t, s, http.MethodGet, "/api/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Present but unverifiable token: 403.
	rec = doRequest(t, s, http.MethodGet, "/api/profile", nil, "not-a-jwt")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProfileReturnsOwnAccount(t *testing.T) {
	s, _ := newTestServer(t)

	tokenA, accountA := signUp(t, s, "Alice", "alice@example.com", "Secret-1")
	_, accountB := signUp(t, s, "Bob", "bob@example.com", "Secret-2")

	rec := doRequest(t, s, http.MethodGet, "/api/profile", nil, tokenA)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp profileResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, accountA.ID, resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEqual(t, accountB.ID, resp.User.ID)

	// No tag, so no history.
	assert.Empty(t, resp.RecentTransactions)
}

func TestProfileHistoryNewestFirstCappedAtFive(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()

	account, err := st.CreateAccount(ctx, model.Account{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
		TagID:        "TAG123",
		Status:       model.StatusActive,
	})
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		scannerID := int64(1)
		if i == 5 {
			scannerID = 2 // exit scanner, so the newest row is distinguishable
		}
		_, err := st.AppendTransaction(ctx, model.Transaction{
			AccountID: account.ID,
			ScannerID: scannerID,
			Event:     "entry",
		})
		require.NoError(t, err)
	}

	token, err := s.issuer.Issue(account.ID, account.Role)
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp profileResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.RecentTransactions, 5)
	assert.Equal(t, int64(2), resp.RecentTransactions[0].ScannerID)
	assert.Equal(t, "exit", resp.RecentTransactions[0].ScannerType)
	assert.Equal(t, "Central", resp.RecentTransactions[0].StationName)
}

func TestProfileDegradesWhenHistoryUnavailable(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()

	account, err := st.CreateAccount(ctx, model.Account{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
		TagID:        "TAG123",
		Status:       model.StatusActive,
	})
	require.NoError(t, err)

	st.SetHistorySupported(false)

	token, err := s.issuer.Issue(account.ID, account.Role)
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp profileResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, account.ID, resp.User.ID)
	assert.NotNil(t, resp.RecentTransactions)
	assert.Empty(t, resp.RecentTransactions)
}
