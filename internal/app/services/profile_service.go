package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/schoolrecords/internal/app/models"
	"github.com/emre/schoolrecords/internal/app/models/dto"
	"github.com/emre/schoolrecords/internal/pkg/apperrors"
	"github.com/emre/schoolrecords/internal/pkg/auth"
	"github.com/emre/schoolrecords/internal/pkg/validation"
)

// UpdateOptions distinguishes self-service edits from admin edits.
type UpdateOptions struct {
	// AllowAdmissionChange permits changing the admission number.
	// Students cannot change their own, admins can.
	AllowAdmissionChange bool
}

// ProfileUpdateService applies partial updates to a student record.
// Absent fields keep their current value; only supplied fields are
// validated and written.
type ProfileUpdateService struct {
	accounts AccountDirectory
	students StudentStore
	hasher   *auth.PasswordHasher
	logger   zerolog.Logger
}

// NewProfileUpdateService creates a new ProfileUpdateService
func NewProfileUpdateService(
	accounts AccountDirectory,
	students StudentStore,
	hasher *auth.PasswordHasher,
	logger zerolog.Logger,
) *ProfileUpdateService {
	return &ProfileUpdateService{
		accounts: accounts,
		students: students,
		hasher:   hasher,
		logger:   logger,
	}
}

// Update loads the student, applies the supplied fields and saves the
// result in a single write. picRef, when non-empty, replaces the
// stored profile picture reference.
func (s *ProfileUpdateService) Update(ctx context.Context, id int64, req *dto.UpdateStudentRequest, picRef string, opts UpdateOptions) (*models.Student, error) {
	student, err := s.students.GetWithPassword(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if !validation.IsValidName(*req.Name) {
			return nil, apperrors.NewValidationError("Name must be at least 2 characters long", "name")
		}
		student.Name = strings.TrimSpace(*req.Name)
	}

	if req.Age != nil {
		if !validation.IsValidAge(*req.Age) {
			return nil, apperrors.NewValidationError("Age must be between 5 and 100", "age")
		}
		student.Age = *req.Age
	}

	if req.Class != nil {
		class := strings.TrimSpace(*req.Class)
		if class == "" {
			return nil, apperrors.NewValidationError("Class cannot be empty", "class")
		}
		student.Class = class
	}

	if req.Email != nil {
		email := validation.NormalizeEmail(*req.Email)
		if !validation.IsValidEmail(email) {
			return nil, apperrors.NewValidationError("Please provide a valid email address", "email")
		}
		// Re-check uniqueness only when the address actually changes;
		// the lookup excludes the student's own row.
		if email != strings.ToLower(student.Email) {
			ref, err := s.accounts.FindByEmail(ctx, email, id)
			if err != nil {
				return nil, fmt.Errorf("error checking if email exists: %w", err)
			}
			if ref != nil {
				return nil, apperrors.NewConflictError("This email is already registered to another account", "email")
			}
		}
		student.Email = email
	}

	if req.AdmissionNumber != nil {
		admission := strings.TrimSpace(*req.AdmissionNumber)
		if admission == "" {
			return nil, apperrors.NewValidationError("Admission number is required", "admissionNumber")
		}
		if admission != student.AdmissionNumber {
			if !opts.AllowAdmissionChange {
				return nil, apperrors.NewValidationError("Admission number cannot be changed", "admissionNumber")
			}
			inUse, err := s.students.AdmissionNumberInUse(ctx, admission, id)
			if err != nil {
				return nil, fmt.Errorf("error checking if admission number exists: %w", err)
			}
			if inUse {
				return nil, apperrors.NewConflictError("This admission number is already registered", "admissionNumber")
			}
			student.AdmissionNumber = admission
		}
	}

	// An empty password field means "keep the current one".
	if req.Password != nil && *req.Password != "" {
		if !validation.IsValidPassword(*req.Password) {
			return nil, apperrors.NewValidationError("Password must be at least 8 characters with uppercase, lowercase, and number", "password")
		}
		hashed, err := s.hasher.Hash(ctx, *req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		student.Password = hashed
	}

	if picRef != "" {
		student.ProfilePic = picRef
	}

	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", student.ID).Msg("Student profile updated")
	return student, nil
}
