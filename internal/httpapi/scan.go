package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"rfid-access/backend/internal/model"
	"rfid-access/backend/internal/store"
)

const defaultScanEvent = "entry"

type scanRequest struct {
	TagID     string `json:"tag_id"`
	ScannerID int64  `json:"scanner_id"`
}

type scanUser struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

type scanResponse struct {
	Success bool     `json:"success"`
	User    scanUser `json:"user"`
	Event   string   `json:"event"`
}

// scanOutcome separates the primary result (tag resolved to an account)
// from the secondary one (whether the transaction row was appended).
type scanOutcome struct {
	account model.Account
	event   string
	logged  bool
}

// performScan validates the tag and best-effort records a transaction.
// Only the tag lookup can fail; everything after it degrades.
func (s *Server) performScan(ctx context.Context, tagID string, scannerID int64) (*scanOutcome, error) {
	account, err := s.store.GetActiveAccountByTag(ctx, tagID)
	if err != nil {
		return nil, err
	}

	event := defaultScanEvent
	if sc, err := s.store.GetScanner(ctx, scannerID); err == nil {
		event = string(sc.Type)
	} else {
		log.Printf("scan: scanner %d not resolved, defaulting to %q: %v", scannerID, defaultScanEvent, err)
	}

	out := &scanOutcome{account: *account, event: event}

	// Deliberately not atomic with the lookup: a failed append must not
	// take down an otherwise valid scan.
	_, err = s.store.AppendTransaction(ctx, model.Transaction{
		AccountID: account.ID,
		ScannerID: scannerID,
		Event:     event,
	})
	if err != nil {
		log.Printf("scan: transaction append failed for account %s: %v", account.ID, err)
		s.metrics.RecordTransactionLogFailed()
	} else {
		out.logged = true
		s.metrics.RecordTransactionLogged()
	}

	return out, nil
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.TagID = strings.TrimSpace(req.TagID)
	if req.TagID == "" {
		writeError(w, http.StatusBadRequest, "tag_id is required")
		return
	}

	if !s.scanLimits.Allow(req.ScannerID) {
		writeError(w, http.StatusTooManyRequests, "Too many scan requests")
		return
	}

	out, err := s.performScan(r.Context(), req.TagID, req.ScannerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.metrics.RecordScanRejected()
			writeError(w, http.StatusNotFound, "Invalid or inactive RFID tag")
			return
		}
		log.Printf("scan: lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Scan failed")
		return
	}

	s.metrics.RecordScanAccepted()
	writeJSON(w, http.StatusOK, scanResponse{
		Success: true,
		User:    scanUser{Name: out.account.Name, Balance: out.account.Balance},
		Event:   out.event,
	})
}
