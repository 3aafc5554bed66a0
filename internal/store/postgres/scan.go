package postgres

import (
	"context"

	"rfid-access/backend/internal/model"
	"rfid-access/backend/internal/store"
)

func (s *Store) GetScanner(ctx context.Context, id int64) (*model.Scanner, error) {
	if !s.historySupported {
		return nil, store.ErrHistoryUnavailable
	}

	var sc model.Scanner
	err := s.pool.QueryRow(ctx, `
		select id, type, station_id
		from public.scanners
		where id = $1
	`, id).Scan(&sc.ID, &sc.Type, &sc.StationID)
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &sc, nil
}

func (s *Store) AppendTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	if !s.historySupported {
		return model.Transaction{}, store.ErrHistoryUnavailable
	}

	var out model.Transaction
	err := s.pool.QueryRow(ctx, `
		insert into public.transactions (account_id, scanner_id, event)
		values ($1::uuid, $2, $3)
		returning id::text, account_id::text, scanner_id, event, created_at
	`, t.AccountID, t.ScannerID, t.Event).Scan(
		&out.ID,
		&out.AccountID,
		&out.ScannerID,
		&out.Event,
		&out.Timestamp,
	)
	if err != nil {
		return model.Transaction{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) RecentTransactions(ctx context.Context, accountID string, limit int) ([]model.TransactionDetail, error) {
	if !s.historySupported {
		return nil, store.ErrHistoryUnavailable
	}

	rows, err := s.pool.Query(ctx, `
		select t.id::text, t.account_id::text, t.scanner_id, t.event, t.created_at,
		       sc.type, st.name
		from public.transactions t
		join public.scanners sc on sc.id = t.scanner_id
		join public.stations st on st.id = sc.station_id
		where t.account_id::text = $1
		order by t.created_at desc
		limit $2
	`, accountID, limit)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var out []model.TransactionDetail
	for rows.Next() {
		var d model.TransactionDetail
		if err := rows.Scan(&d.ID, &d.AccountID, &d.ScannerID, &d.Event, &d.Timestamp, &d.ScannerType, &d.StationName); err != nil {
			return nil, mapPgErr(err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
