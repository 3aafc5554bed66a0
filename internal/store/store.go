package store

import (
	"context"
	"errors"

	"rfid-access/backend/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")

	// ErrHistoryUnavailable is returned by scanner/transaction operations
	// when the backing schema lacks the optional history tables. Callers
	// treat it as a soft failure.
	ErrHistoryUnavailable = errors.New("history_unavailable")
)

type Store interface {
	CreateAccount(ctx context.Context, a model.Account) (model.Account, error)
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)

	// GetActiveAccountByTag resolves an RFID tag to its active owner.
	// Inactive accounts are invisible to this lookup.
	GetActiveAccountByTag(ctx context.Context, tagID string) (*model.Account, error)

	// ListUsers returns role=user accounts, most recently created first.
	ListUsers(ctx context.Context) ([]model.Account, error)

	// DeleteUser removes the account only if its role is user. Deleting an
	// absent or non-user id is a no-op, not an error.
	DeleteUser(ctx context.Context, id string) error

	GetScanner(ctx context.Context, id int64) (*model.Scanner, error)
	AppendTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error)
	RecentTransactions(ctx context.Context, accountID string, limit int) ([]model.TransactionDetail, error)

	// SupportsHistory reports whether the scanner/station/transaction
	// tables exist. Resolved once at store construction.
	SupportsHistory() bool
}
