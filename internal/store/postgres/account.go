package postgres

import (
	"context"

	"rfid-access/backend/internal/model"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `id::text, name, email, password_hash, role, coalesce(tag_id, ''), status, balance::float8, created_at`

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.TagID,
		&a.Status,
		&a.Balance,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a model.Account) (model.Account, error) {
	out, err := scanAccount(s.pool.QueryRow(ctx, `
		insert into public.accounts (name, email, password_hash, role, tag_id, status, balance)
		values ($1, $2, $3, $4, nullif($5, ''), $6, $7)
		returning `+accountColumns+`
	`, a.Name, a.Email, a.PasswordHash, string(a.Role), a.TagID, string(a.Status), a.Balance))
	if err != nil {
		return model.Account{}, err
	}
	return *out, nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	return scanAccount(s.pool.QueryRow(ctx, `
		select `+accountColumns+`
		from public.accounts
		where id::text = $1
	`, id))
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	return scanAccount(s.pool.QueryRow(ctx, `
		select `+accountColumns+`
		from public.accounts
		where lower(email) = lower($1)
	`, email))
}

func (s *Store) GetActiveAccountByTag(ctx context.Context, tagID string) (*model.Account, error) {
	return scanAccount(s.pool.QueryRow(ctx, `
		select `+accountColumns+`
		from public.accounts
		where tag_id = $1 and status = 'active'
	`, tagID))
}

func (s *Store) ListUsers(ctx context.Context) ([]model.Account, error) {
	rows, err := s.pool.Query(ctx, `
		select `+accountColumns+`
		from public.accounts
		where role = 'user'
		order by created_at desc
	`)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	// Text comparison keeps malformed ids a silent no-op instead of a
	// uuid cast error. Zero rows affected is fine: delete is idempotent.
	_, err := s.pool.Exec(ctx, `
		delete from public.accounts
		where id::text = $1 and role = 'user'
	`, id)
	if err != nil {
		return mapPgErr(err)
	}
	return nil
}
