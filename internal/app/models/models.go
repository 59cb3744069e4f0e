package models

// Role distinguishes the two account variants. Both share one
// case-insensitive email-uniqueness space.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// AccountRef is the tagged result of a unified lookup across both
// account collections.
type AccountRef struct {
	ID   int64
	Role Role
}
