package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/schoolrecords/internal/app/models"
)

// AccountRepository answers uniqueness queries over the union of both
// account collections. Email uniqueness is a single identity space
// shared by students and admins, so lookups must not be scattered over
// the two tables at call sites.
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByEmail looks up the email across students and admins in one
// polymorphic query and returns a tagged reference, or nil when the
// email is free. excludeStudentID scopes the student side to "any
// other student" for update-time checks; pass 0 to search all.
func (r *AccountRepository) FindByEmail(ctx context.Context, email string, excludeStudentID int64) (*models.AccountRef, error) {
	const query = `
		SELECT id, 'student' AS role FROM students WHERE lower(email) = lower($1) AND id <> $2
		UNION ALL
		SELECT id, 'admin' AS role FROM admins WHERE lower(email) = lower($1)
		LIMIT 1`

	var ref models.AccountRef
	err := r.db.QueryRow(ctx, query, email, excludeStudentID).Scan(&ref.ID, &ref.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up account by email: %w", err)
	}

	return &ref, nil
}
