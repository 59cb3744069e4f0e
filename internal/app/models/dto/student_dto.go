package dto

import "github.com/emre/schoolrecords/internal/app/models"

// StudentSummary is the client-facing view of a student account. It
// never includes the password hash.
type StudentSummary struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Age             int    `json:"age"`
	Class           string `json:"class"`
	AdmissionNumber string `json:"admissionNumber"`
	ProfilePic      string `json:"profilePic"`
}

// NewStudentSummary builds the response view of a student.
func NewStudentSummary(s *models.Student) *StudentSummary {
	return &StudentSummary{
		ID:              s.ID,
		Name:            s.Name,
		Email:           s.Email,
		Age:             s.Age,
		Class:           s.Class,
		AdmissionNumber: s.AdmissionNumber,
		ProfilePic:      s.ProfilePic,
	}
}

// AdminSummary is the client-facing view of an admin account.
type AdminSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewAdminSummary builds the response view of an admin.
func NewAdminSummary(a *models.Admin) *AdminSummary {
	return &AdminSummary{
		ID:    a.ID,
		Email: a.Email,
		Role:  string(models.RoleAdmin),
	}
}

// DeletedStudent is the abbreviated view returned after a hard delete.
type DeletedStudent struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    *StudentSummary `json:"user"`
}

// StudentLoginResponse is returned after a successful student login.
type StudentLoginResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Student *StudentSummary `json:"student"`
}

// AdminLoginResponse is returned after a successful admin login.
type AdminLoginResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Admin   *AdminSummary `json:"admin"`
}

// StudentResponse wraps a single student view.
type StudentResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Student *StudentSummary `json:"student"`
}

// StudentListResponse wraps a search result.
type StudentListResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Students []*StudentSummary `json:"students"`
}

// DeleteStudentResponse is returned after an admin hard delete.
type DeleteStudentResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	DeletedStudent *DeletedStudent `json:"deletedStudent"`
}
