package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emre/schoolrecords/internal/app/models"
	"github.com/emre/schoolrecords/internal/app/models/dto"
	"github.com/emre/schoolrecords/internal/pkg/apperrors"
	"github.com/emre/schoolrecords/internal/pkg/auth"
	"github.com/emre/schoolrecords/internal/pkg/validation"
)

// AuthService handles registration and login for both account kinds.
type AuthService struct {
	accounts AccountDirectory
	students StudentStore
	admins   AdminStore
	hasher   *auth.PasswordHasher
	jwt      *auth.JWTService
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	accounts AccountDirectory,
	students StudentStore,
	admins AdminStore,
	hasher *auth.PasswordHasher,
	jwt *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		students: students,
		admins:   admins,
		hasher:   hasher,
		jwt:      jwt,
		logger:   logger,
	}
}

// createStudent validates, checks uniqueness, hashes and persists a
// new student. Shared by self-registration and admin-driven creation.
// Each step is a hard gate: the first failure short-circuits the rest.
func createStudent(
	ctx context.Context,
	accounts AccountDirectory,
	students StudentStore,
	hasher *auth.PasswordHasher,
	req *dto.RegisterStudentRequest,
	picRef string,
) (*models.Student, error) {
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewValidationError("Name must be at least 2 characters long", "name")
	}
	if !validation.IsValidAge(req.Age) {
		return nil, apperrors.NewValidationError("Age must be between 5 and 100", "age")
	}
	class := strings.TrimSpace(req.Class)
	if class == "" {
		return nil, apperrors.NewValidationError("Class cannot be empty", "class")
	}
	admission := strings.TrimSpace(req.AdmissionNumber)
	if admission == "" {
		return nil, apperrors.NewValidationError("Admission number is required", "admissionNumber")
	}
	email := validation.NormalizeEmail(req.Email)
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("Please provide a valid email address", "email")
	}
	if !validation.IsValidPassword(req.Password) {
		return nil, apperrors.NewValidationError("Password must be at least 8 characters with uppercase, lowercase, and number", "password")
	}

	// Pre-write uniqueness checks. The store's unique constraints
	// remain the authoritative backstop for the check-then-act gap.
	ref, err := accounts.FindByEmail(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if ref != nil {
		return nil, apperrors.NewConflictError("An account with this email already exists", "email")
	}

	inUse, err := students.AdmissionNumberInUse(ctx, admission, 0)
	if err != nil {
		return nil, fmt.Errorf("error checking if admission number exists: %w", err)
	}
	if inUse {
		return nil, apperrors.NewConflictError("This admission number is already registered", "admissionNumber")
	}

	hashed, err := hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		Name:            strings.TrimSpace(req.Name),
		Age:             req.Age,
		Class:           class,
		AdmissionNumber: admission,
		Email:           email,
		Password:        hashed,
		ProfilePic:      picRef,
	}

	// A duplicate-key rejection despite the pre-check (a race) comes
	// back from the store already translated to the same Conflict.
	if _, err := students.Insert(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// RegisterStudent registers a new student account and issues its
// session token.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest, picRef string) (*models.Student, string, error) {
	student, err := createStudent(ctx, s.accounts, s.students, s.hasher, req, picRef)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwt.Issue(student.ID, student.Email, string(models.RoleStudent))
	if err != nil {
		return nil, "", fmt.Errorf("token generation error: %w", err)
	}

	s.logger.Info().Int64("id", student.ID).Str("email", student.Email).Msg("Student registered")
	return student, token, nil
}

// LoginStudent authenticates a student and issues a session token.
// Unknown email and wrong password collapse into the same generic
// invalid-credentials outcome.
func (s *AuthService) LoginStudent(ctx context.Context, req *dto.LoginRequest) (*models.Student, string, error) {
	email := validation.NormalizeEmail(req.Email)
	if !validation.IsValidEmail(email) {
		return nil, "", apperrors.NewValidationError("Please provide a valid email address", "email")
	}
	if req.Password == "" {
		return nil, "", apperrors.NewValidationError("Password is required", "password")
	}

	student, err := s.students.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error looking up student: %w", err)
	}

	if !s.hasher.Verify(ctx, req.Password, student.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(student.ID, student.Email, string(models.RoleStudent))
	if err != nil {
		return nil, "", fmt.Errorf("token generation error: %w", err)
	}

	s.logger.Info().Int64("id", student.ID).Msg("Student logged in")
	return student, token, nil
}

// LoginAdmin authenticates an admin and issues a session token. The
// stored bcrypt hash is verified exactly like the student path.
func (s *AuthService) LoginAdmin(ctx context.Context, req *dto.LoginRequest) (*models.Admin, string, error) {
	email := validation.NormalizeEmail(req.Email)
	if !validation.IsValidEmail(email) {
		return nil, "", apperrors.NewValidationError("Please provide a valid email address", "email")
	}
	if req.Password == "" {
		return nil, "", apperrors.NewValidationError("Password is required", "password")
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error looking up admin: %w", err)
	}

	if !s.hasher.Verify(ctx, req.Password, admin.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(admin.ID, admin.Email, string(models.RoleAdmin))
	if err != nil {
		return nil, "", fmt.Errorf("token generation error: %w", err)
	}

	s.logger.Info().Int64("id", admin.ID).Msg("Admin logged in")
	return admin, token, nil
}
