package memory

import (
	"context"
	"sort"
	"time"

	"rfid-access/backend/internal/model"
	"rfid-access/backend/internal/store"
)

func (s *Store) GetScanner(_ context.Context, id int64) (*model.Scanner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.historySupported {
		return nil, store.ErrHistoryUnavailable
	}

	sc, ok := s.scanners[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sc, nil
}

func (s *Store) AppendTransaction(_ context.Context, t model.Transaction) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.historySupported {
		return model.Transaction{}, store.ErrHistoryUnavailable
	}

	t.ID = newID()
	t.Timestamp = time.Now().UTC()
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *Store) RecentTransactions(_ context.Context, accountID string, limit int) ([]model.TransactionDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.historySupported {
		return nil, store.ErrHistoryUnavailable
	}

	// Walk backwards so equal timestamps still come out newest-insert
	// first under the stable sort.
	var out []model.TransactionDetail
	for i := len(s.transactions) - 1; i >= 0; i-- {
		t := s.transactions[i]
		if t.AccountID != accountID {
			continue
		}
		d := model.TransactionDetail{Transaction: t}
		if sc, ok := s.scanners[t.ScannerID]; ok {
			d.ScannerType = string(sc.Type)
			if st, ok := s.stations[sc.StationID]; ok {
				d.StationName = st.Name
			}
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
