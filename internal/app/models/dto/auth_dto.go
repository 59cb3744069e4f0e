package dto

// RegisterStudentRequest carries the self-service registration payload.
// Requests arrive as JSON or as multipart form data when a profile
// picture is attached.
type RegisterStudentRequest struct {
	Name            string `json:"name" form:"name" binding:"required"`
	Age             int    `json:"age" form:"age" binding:"required"`
	Class           string `json:"class" form:"class" binding:"required"`
	AdmissionNumber string `json:"admissionNumber" form:"admissionNumber" binding:"required"`
	Email           string `json:"email" form:"email" binding:"required"`
	Password        string `json:"password" form:"password" binding:"required"`
}

// LoginRequest carries credentials for both student and admin login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UpdateStudentRequest is a sparse update set: nil means "leave the
// stored value untouched", never "clear".
type UpdateStudentRequest struct {
	Name            *string `json:"name" form:"name"`
	Age             *int    `json:"age" form:"age"`
	Class           *string `json:"class" form:"class"`
	Email           *string `json:"email" form:"email"`
	AdmissionNumber *string `json:"admissionNumber" form:"admissionNumber"`
	Password        *string `json:"password" form:"password"`
}
