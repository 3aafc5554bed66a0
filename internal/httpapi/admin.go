package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"rfid-access/backend/internal/model"
	"rfid-access/backend/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// defaultUserPassword is the documented placeholder set on admin-created
// accounts; users are expected to change it after first login.
const defaultUserPassword = "password123"

type createUserRequest struct {
	Name    string   `json:"name"`
	TagID   string   `json:"tag_id"`
	Email   string   `json:"email"`
	Status  string   `json:"status"`
	Balance *float64 `json:"balance"`
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleUsersList(w, r)
	case http.MethodPost:
		s.handleUserCreate(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("admin: list users failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}
	if users == nil {
		users = []model.Account{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	status := model.AccountStatus(req.Status)
	if status == "" {
		status = model.StatusActive
	}

	var balance float64
	if req.Balance != nil {
		if *req.Balance < 0 {
			writeError(w, http.StatusBadRequest, "Balance must be non-negative")
			return
		}
		balance = *req.Balance
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultUserPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	account := model.Account{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		TagID:        strings.TrimSpace(req.TagID),
		Status:       status,
		Balance:      balance,
	}

	created, err := s.store.CreateAccount(r.Context(), account)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "Email or tag already in use")
			return
		}
		log.Printf("admin: create user failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))

	// Only role=user rows are deletable; an absent or admin id is a
	// silent no-op so delete stays idempotent.
	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		log.Printf("admin: delete user %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
