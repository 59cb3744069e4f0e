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
	"github.com/emre/schoolrecords/internal/pkg/logger"
)

// studentColumns are the columns returned by ordinary reads. The
// password hash is selected only where verification needs it.
var studentColumns = []string{"id", "name", "age", "class", "admission_number", "email", "profile_pic", "created_at", "updated_at"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// conflictError translates a unique violation into the same
// field-tagged conflict a pre-write check produces. Any other error is
// wrapped with op context.
func conflictError(err error, op string) error {
	if field, ok := dberrors.ConflictField(err); ok {
		return apperrors.NewConflictError(fmt.Sprintf("This %s is already registered", field), field)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Insert persists a new student and returns its id.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) (int64, error) {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "age", "class", "admission_number", "email", "password", "profile_pic").
		Values(student.Name, student.Age, student.Class, student.AdmissionNumber, student.Email, student.Password, student.ProfilePic).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Str("email", student.Email).Str("admissionNumber", student.AdmissionNumber).Msg("Duplicate key on student insert")
			return 0, conflictError(err, "insert student")
		}
		logger.Error().Err(err).Msg("Error executing insert student query")
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return student.ID, nil
}

// GetByID retrieves a student by id, without the password hash.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.Name, &s.Age, &s.Class, &s.AdmissionNumber, &s.Email, &s.ProfilePic, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student not found", "id")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &s, nil
}

// GetByEmail retrieves a student by normalized email, including the
// password hash for credential verification.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	sql, args, err := r.sb.Select(append(studentColumns, "password")...).
		From("students").
		Where(squirrel.Expr("lower(email) = lower(?)", email)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student by email query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.Name, &s.Age, &s.Class, &s.AdmissionNumber, &s.Email, &s.ProfilePic, &s.CreatedAt, &s.UpdatedAt, &s.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving student by email: %w", err)
	}

	return &s, nil
}

// GetWithPassword retrieves a student by id including the password
// hash. Used by profile updates, which save the whole row at once and
// must carry the stored hash through unchanged.
func (r *StudentRepository) GetWithPassword(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(append(studentColumns, "password")...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.Name, &s.Age, &s.Class, &s.AdmissionNumber, &s.Email, &s.ProfilePic, &s.CreatedAt, &s.UpdatedAt, &s.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student not found", "id")
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &s, nil
}

// AdmissionNumberInUse checks whether another student already holds
// the admission number. excludeID scopes the check to "any other
// student"; pass 0 to check all.
func (r *StudentRepository) AdmissionNumberInUse(ctx context.Context, number string, excludeID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"admission_number": number}).
		Where(squirrel.NotEq{"id": excludeID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build admission number exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking admission number existence: %w", err)
	}

	return exists, nil
}

// Update saves the whole student row at once.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("name", student.Name).
		Set("age", student.Age).
		Set("class", student.Class).
		Set("admission_number", student.AdmissionNumber).
		Set("email", student.Email).
		Set("password", student.Password).
		Set("profile_pic", student.ProfilePic).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			logger.Warn().Int64("id", student.ID).Msg("Duplicate key on student update")
			return conflictError(err, "update student")
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Student not found", "id")
	}

	return nil
}

// Delete hard-deletes a student and returns the deleted identity.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, name, email, profile_pic").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete student query: %w", err)
	}

	var s models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Name, &s.Email, &s.ProfilePic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Student not found", "id")
		}
		return nil, fmt.Errorf("error deleting student: %w", err)
	}

	logger.Info().Int64("id", s.ID).Str("email", s.Email).Msg("Student deleted")
	return &s, nil
}

// Search lists students matching the keyword as a case-insensitive
// substring of name, email, admission number or class. An empty
// keyword lists everyone.
func (r *StudentRepository) Search(ctx context.Context, keyword string) ([]*models.Student, error) {
	builder := r.sb.Select(studentColumns...).From("students").OrderBy("id")

	if keyword != "" {
		pattern := "%" + keyword + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"admission_number": pattern},
			squirrel.ILike{"class": pattern},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Age, &s.Class, &s.AdmissionNumber, &s.Email, &s.ProfilePic, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}
