package models

import "time"

// Admin defines the admin model based on the 'admins' table. Admin
// accounts are provisioned at startup (see internal/seed); there is no
// self-registration surface for them.
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
