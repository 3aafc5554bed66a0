package memory

import (
	"sync"

	"rfid-access/backend/internal/model"
)

// Store is the in-memory fallback used when no database is configured,
// and the backing store for handler tests.
type Store struct {
	mu sync.Mutex

	accounts     map[string]model.Account
	scanners     map[int64]model.Scanner
	stations     map[int64]model.Station
	transactions []model.Transaction

	historySupported bool
}

func NewStore() *Store {
	s := &Store{
		accounts:         make(map[string]model.Account),
		scanners:         make(map[int64]model.Scanner),
		stations:         make(map[int64]model.Station),
		historySupported: true,
	}
	s.seedReferenceData()
	return s
}

// seedReferenceData mirrors the rows the migrations seed into postgres.
func (s *Store) seedReferenceData() {
	for _, st := range []model.Station{
		{ID: 1, Name: "Central"},
		{ID: 2, Name: "Riverside"},
	} {
		s.stations[st.ID] = st
	}
	for _, sc := range []model.Scanner{
		{ID: 1, Type: model.ScannerEntry, StationID: 1},
		{ID: 2, Type: model.ScannerExit, StationID: 1},
		{ID: 3, Type: model.ScannerEntry, StationID: 2},
		{ID: 4, Type: model.ScannerExit, StationID: 2},
	} {
		s.scanners[sc.ID] = sc
	}
}

func (s *Store) SupportsHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historySupported
}

// SetHistorySupported toggles the optional history schema, letting tests
// exercise the degraded-read paths.
func (s *Store) SetHistorySupported(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.historySupported = v
}
