// Package model defines the records stored by the site backend.
package model

import "time"

// User is an admin account. PasswordHash is a bcrypt hash and is never
// serialised to clients.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
