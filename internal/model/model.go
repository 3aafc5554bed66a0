package model

import "time"

type ScannerType string

const (
	ScannerEntry ScannerType = "entry"
	ScannerExit  ScannerType = "exit"
)

// Scanner is a station-side RFID reader. Static reference data.
type Scanner struct {
	ID        int64       `json:"id"`
	Type      ScannerType `json:"type"`
	StationID int64       `json:"station_id"`
}

type Station struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Transaction is one append-only entry/exit log row.
type Transaction struct {
	ID        string    `json:"id"`
	AccountID string    `json:"user_id"`
	ScannerID int64     `json:"scanner_id"`
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionDetail is a transaction joined with its scanner type and
// station name, as shown in the profile history.
type TransactionDetail struct {
	Transaction
	ScannerType string `json:"scanner_type"`
	StationName string `json:"station_name"`
}
