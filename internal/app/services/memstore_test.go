package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/emre/schoolrecords/internal/app/models"
	"github.com/emre/schoolrecords/internal/pkg/apperrors"
)

// memStore is an in-memory stand-in for the Postgres repositories,
// implementing StudentStore, AdminStore and AccountDirectory.
type memStore struct {
	nextID   int64
	students map[int64]*models.Student
	admins   map[int64]*models.Admin
}

func newMemStore() *memStore {
	return &memStore{
		nextID:   1,
		students: make(map[int64]*models.Student),
		admins:   make(map[int64]*models.Admin),
	}
}

func (m *memStore) addAdmin(email, hash string) *models.Admin {
	a := &models.Admin{ID: m.nextID, Email: email, Password: hash}
	m.nextID++
	m.admins[a.ID] = a
	return a
}

func copyStudent(s *models.Student) *models.Student {
	c := *s
	return &c
}

func (m *memStore) Insert(_ context.Context, student *models.Student) (int64, error) {
	for _, s := range m.students {
		if strings.EqualFold(s.Email, student.Email) {
			return 0, apperrors.NewConflictError("This email is already registered", "email")
		}
		if s.AdmissionNumber == student.AdmissionNumber {
			return 0, apperrors.NewConflictError("This admissionNumber is already registered", "admissionNumber")
		}
	}
	student.ID = m.nextID
	m.nextID++
	m.students[student.ID] = copyStudent(student)
	return student.ID, nil
}

func (m *memStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Student not found", "id")
	}
	c := copyStudent(s)
	c.Password = ""
	return c, nil
}

func (m *memStore) GetWithPassword(_ context.Context, id int64) (*models.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Student not found", "id")
	}
	return copyStudent(s), nil
}

func (m *memStore) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range m.students {
		if strings.EqualFold(s.Email, email) {
			return copyStudent(s), nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (m *memStore) AdmissionNumberInUse(_ context.Context, number string, excludeID int64) (bool, error) {
	for _, s := range m.students {
		if s.ID != excludeID && s.AdmissionNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return apperrors.NewNotFoundError("Student not found", "id")
	}
	m.students[student.ID] = copyStudent(student)
	return nil
}

func (m *memStore) Delete(_ context.Context, id int64) (*models.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Student not found", "id")
	}
	delete(m.students, id)
	return s, nil
}

func (m *memStore) Search(_ context.Context, keyword string) ([]*models.Student, error) {
	var out []*models.Student
	kw := strings.ToLower(keyword)
	for _, s := range m.students {
		if kw == "" ||
			strings.Contains(strings.ToLower(s.Name), kw) ||
			strings.Contains(strings.ToLower(s.Email), kw) ||
			strings.Contains(strings.ToLower(s.AdmissionNumber), kw) ||
			strings.Contains(strings.ToLower(s.Class), kw) {
			c := copyStudent(s)
			c.Password = ""
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) AdminGetByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range m.admins {
		if strings.EqualFold(a.Email, email) {
			c := *a
			return &c, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (m *memStore) FindByEmail(_ context.Context, email string, excludeStudentID int64) (*models.AccountRef, error) {
	for _, s := range m.students {
		if s.ID != excludeStudentID && strings.EqualFold(s.Email, email) {
			return &models.AccountRef{ID: s.ID, Role: models.RoleStudent}, nil
		}
	}
	for _, a := range m.admins {
		if strings.EqualFold(a.Email, email) {
			return &models.AccountRef{ID: a.ID, Role: models.RoleAdmin}, nil
		}
	}
	return nil, nil
}

// adminStoreAdapter exposes memStore as an AdminStore without the
// method name colliding with StudentStore.GetByEmail.
type adminStoreAdapter struct{ m *memStore }

func (a adminStoreAdapter) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return a.m.AdminGetByEmail(ctx, email)
}

// discardStorage drops uploaded files.
type discardStorage struct{}

func (discardStorage) SaveFile(fh *multipart.FileHeader) (string, error) { return fh.Filename, nil }
func (discardStorage) DeleteFile(string) error                           { return nil }
