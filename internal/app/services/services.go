// Package services holds the identity and profile-management core:
// registration, authentication and profile mutation for both account
// kinds. Services consume narrow store interfaces so the persistence
// layer stays swappable in tests.
package services

import (
	"context"

	"github.com/emre/schoolrecords/internal/app/models"
)

// StudentStore is the persistence surface for student accounts.
type StudentStore interface {
	Insert(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetWithPassword(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	AdmissionNumberInUse(ctx context.Context, number string, excludeID int64) (bool, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) (*models.Student, error)
	Search(ctx context.Context, keyword string) ([]*models.Student, error)
}

// AdminStore is the persistence surface for admin accounts.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// AccountDirectory answers email-uniqueness queries across the union
// of students and admins.
type AccountDirectory interface {
	FindByEmail(ctx context.Context, email string, excludeStudentID int64) (*models.AccountRef, error)
}
