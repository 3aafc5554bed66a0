package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rfid-access/backend/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool

	// historySupported is probed once at construction; deployments may
	// point at a database provisioned without the history tables.
	historySupported bool
}

func NewStore(databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	// Ping to fail fast.
	ctxPing, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := &Store{pool: pool}

	ctxProbe, cancelProbe := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelProbe()
	supported, err := probeHistoryTables(ctxProbe, pool)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("probe schema: %w", err)
	}
	s.historySupported = supported

	return s, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) SupportsHistory() bool {
	return s.historySupported
}

func probeHistoryTables(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var n int
	err := pool.QueryRow(ctx, `
		select count(*)
		from information_schema.tables
		where table_schema = 'public'
		  and table_name in ('transactions', 'scanners', 'stations')
	`).Scan(&n)
	if err != nil {
		return false, err
	}
	return n == 3, nil
}

func mapPgErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return store.ErrConflict
	}
	return err
}
