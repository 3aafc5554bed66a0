package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

// Account is a registered passenger or administrator. The password hash is
// tagged out of JSON so it can never appear in a response body.
type Account struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role"`
	TagID        string        `json:"tag_id,omitempty"`
	Status       AccountStatus `json:"status"`
	Balance      float64       `json:"balance"`
	CreatedAt    time.Time     `json:"created_at"`
}
