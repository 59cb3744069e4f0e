package models

import "time"

// Student defines the student model based on the 'students' table.
// Email and admission number are stored normalized (trimmed,
// email lower-cased). Password holds the bcrypt hash and is excluded
// from JSON.
type Student struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Age             int       `json:"age" db:"age"`
	Class           string    `json:"class" db:"class"`
	AdmissionNumber string    `json:"admissionNumber" db:"admission_number"`
	Email           string    `json:"email" db:"email"`
	Password        string    `json:"-" db:"password"`
	ProfilePic      string    `json:"profilePic" db:"profile_pic"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
