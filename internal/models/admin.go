package models

import "time"

// Admin is a console account, a separate identity space from User. The
// system supports a single admin by convention: creation is rejected once
// any row exists.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
