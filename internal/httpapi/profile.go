package httpapi

import (
	"errors"
	"log"
	"net/http"

	"rfid-access/backend/internal/model"
	"rfid-access/backend/internal/store"
)

const historyLimit = 5

type profileResponse struct {
	User               model.Account             `json:"user"`
	RecentTransactions []model.TransactionDetail `json:"recentTransactions"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ident, _ := identityFromContext(r.Context())

	account, err := s.store.GetAccountByID(r.Context(), ident.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("profile: load account failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to load profile data")
		return
	}

	// History is secondary: any failure degrades to an empty list
	// instead of failing the request.
	transactions := []model.TransactionDetail{}
	if account.TagID != "" && s.store.SupportsHistory() {
		rows, err := s.store.RecentTransactions(r.Context(), account.ID, historyLimit)
		if err != nil {
			log.Printf("profile: transaction history unavailable for %s: %v", account.ID, err)
		} else if rows != nil {
			transactions = rows
		}
	}

	writeJSON(w, http.StatusOK, profileResponse{
		User:               *account,
		RecentTransactions: transactions,
	})
}
