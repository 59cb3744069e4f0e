package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/schoolrecords/internal/app/models"
	"github.com/emre/schoolrecords/internal/pkg/apperrors"
	"github.com/emre/schoolrecords/internal/pkg/dberrors"
)

// AdminRepository handles admin database operations
type AdminRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByEmail retrieves an admin by normalized email, including the
// password hash for credential verification.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	sql, args, err := r.sb.Select("id", "email", "password", "created_at").
		From("admins").
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get admin by email query: %w", err)
	}

	var a models.Admin
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.Email, &a.Password, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving admin by email: %w", err)
	}

	return &a, nil
}

// EmailExists checks if an admin already holds the email.
func (r *AdminRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("admins").
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build admin email exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking admin email existence: %w", err)
	}

	return exists, nil
}

// Insert provisions a new admin account. Used by startup seeding only;
// there is no admin self-registration surface.
func (r *AdminRepository) Insert(ctx context.Context, admin *models.Admin) (int64, error) {
	sql, args, err := r.sb.Insert("admins").
		Columns("email", "password").
		Values(admin.Email, admin.Password).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert admin query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		if field, ok := dberrors.ConflictField(err); ok {
			return 0, apperrors.NewConflictError(fmt.Sprintf("This %s is already registered", field), field)
		}
		return 0, fmt.Errorf("error creating admin: %w", err)
	}

	return admin.ID, nil
}
