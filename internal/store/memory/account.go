package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"rfid-access/backend/internal/model"
	"rfid-access/backend/internal/store"
)

func (s *Store) CreateAccount(_ context.Context, a model.Account) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.Email = strings.TrimSpace(a.Email)
	a.Name = strings.TrimSpace(a.Name)
	if a.Email == "" {
		return model.Account{}, errors.New("email_required")
	}

	for _, existing := range s.accounts {
		if strings.EqualFold(existing.Email, a.Email) {
			return model.Account{}, store.ErrConflict
		}
		if a.TagID != "" && existing.TagID == a.TagID {
			return model.Account{}, store.ErrConflict
		}
	}

	if a.Role == "" {
		a.Role = model.RoleUser
	}
	if a.Status == "" {
		a.Status = model.StatusActive
	}
	a.ID = newID()
	a.CreatedAt = time.Now().UTC()
	s.accounts[a.ID] = a
	return a, nil
}

func (s *Store) GetAccountByID(_ context.Context, id string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (s *Store) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetActiveAccountByTag(_ context.Context, tagID string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.TagID == tagID && a.Status == model.StatusActive {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Account
	for _, a := range s.accounts {
		if a.Role == model.RoleUser {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok || a.Role != model.RoleUser {
		return nil
	}
	delete(s.accounts, id)
	return nil
}
