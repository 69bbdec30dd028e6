// Package models holds the persisted records and the closed enums used by
// the server.
package models

import "time"

// User is an account row. PasswordHash never leaves the server.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
