package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"
)

const requestIDHeader = "X-Request-Id"

type contextKey string

const ctxIdentity contextKey = "identity"

// identity is the verified claim set attached to the request context by
// requireAuth.
type identity struct {
	AccountID string
	Role      string
}

func identityFromContext(ctx context.Context) (identity, bool) {
	id, ok := ctx.Value(ctxIdentity).(identity)
	return id, ok
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(requestIDHeader) == "" {
			var b [12]byte
			_, _ = rand.Read(b[:])
			r.Header.Set(requestIDHeader, hex.EncodeToString(b[:]))
		}
		w.Header().Set(requestIDHeader, r.Header.Get(requestIDHeader))
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.RecordHTTPStatus(rec.status)
		log.Printf("%s %s %d %s in %s", r.Method, r.URL.Path, rec.status, r.Header.Get(requestIDHeader), time.Since(start).String())
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireAuth gates a handler on a valid bearer token: 401 when no token
// is presented, 403 when one is presented but does not verify.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if auth == "" || !strings.HasPrefix(auth, prefix) {
			log.Printf("[auth] no token on %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, prefix))
		accountID, role, err := s.issuer.Verify(tokenStr)
		if err != nil {
			log.Printf("[auth] token verification failed: %v", err)
			w.WriteHeader(http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), ctxIdentity, identity{
			AccountID: accountID,
			Role:      string(role),
		})
		next(w, r.WithContext(ctx))
	}
}

// requireAdmin must sit inside requireAuth; it only trusts the verified
// role claim from the context.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := identityFromContext(r.Context())
		if !ok || ident.Role != "admin" {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	}
}
