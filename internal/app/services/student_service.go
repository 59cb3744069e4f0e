package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/emre/schoolrecords/internal/app/models"
	"github.com/emre/schoolrecords/internal/app/models/dto"
	"github.com/emre/schoolrecords/internal/pkg/auth"
	"github.com/emre/schoolrecords/internal/pkg/filestorage"
)

// StudentService exposes the admin-facing student roster operations.
type StudentService struct {
	accounts AccountDirectory
	students StudentStore
	hasher   *auth.PasswordHasher
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(
	accounts AccountDirectory,
	students StudentStore,
	hasher *auth.PasswordHasher,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		accounts: accounts,
		students: students,
		hasher:   hasher,
		storage:  storage,
		logger:   logger,
	}
}

// List returns students matching the keyword across name, email,
// admission number and class. An empty keyword returns everyone.
func (s *StudentService) List(ctx context.Context, keyword string) ([]*models.Student, error) {
	return s.students.Search(ctx, keyword)
}

// Get returns a single student by ID.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	return s.students.GetByID(ctx, id)
}

// Create adds a student on behalf of an admin. Same validation and
// uniqueness rules as self-registration, but no token is issued.
func (s *StudentService) Create(ctx context.Context, req *dto.RegisterStudentRequest, picRef string) (*models.Student, error) {
	student, err := createStudent(ctx, s.accounts, s.students, s.hasher, req, picRef)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("id", student.ID).Str("email", student.Email).Msg("Student created by admin")
	return student, nil
}

// Delete removes a student and returns a snapshot of the deleted row.
func (s *StudentService) Delete(ctx context.Context, id int64) (*models.Student, error) {
	deleted, err := s.students.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if deleted.ProfilePic != "" {
		if err := s.storage.DeleteFile(deleted.ProfilePic); err != nil {
			s.logger.Warn().Err(err).Int64("id", id).Msg("Failed to remove profile picture of deleted student")
		}
	}

	s.logger.Info().Int64("id", id).Msg("Student deleted")
	return deleted, nil
}
