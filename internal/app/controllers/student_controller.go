package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/schoolrecords/internal/app/models/dto"
	"github.com/emre/schoolrecords/internal/app/services"
	"github.com/emre/schoolrecords/internal/middleware"
	"github.com/emre/schoolrecords/internal/pkg/apperrors"
	"github.com/emre/schoolrecords/internal/pkg/filestorage"
)

// StudentController handles self-service student endpoints:
// registration, login and own-profile access.
type StudentController struct {
	authService    *services.AuthService
	studentService *services.StudentService
	profileService *services.ProfileUpdateService
	storage        filestorage.FileStorage
}

// NewStudentController creates a new StudentController
func NewStudentController(
	authService *services.AuthService,
	studentService *services.StudentService,
	profileService *services.ProfileUpdateService,
	storage filestorage.FileStorage,
) *StudentController {
	return &StudentController{
		authService:    authService,
		studentService: studentService,
		profileService: profileService,
		storage:        storage,
	}
}

// savePicIfPresent stores an optional "profilePic" multipart file and
// returns its storage reference, or "" when the field is absent. An
// absent field or a non-multipart body is fine; a multipart body that
// cannot be parsed is a validation failure.
func savePicIfPresent(c *gin.Context, storage filestorage.FileStorage) (string, error) {
	fileHeader, err := c.FormFile("profilePic")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", apperrors.NewValidationError("Invalid file upload", "profilePic")
	}
	return storage.SaveFile(fileHeader)
}

// Register handles POST /api/student/register. Accepts JSON or
// multipart form data; the multipart form may carry a profile picture.
func (ctrl *StudentController) Register(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return
	}

	picRef, err := savePicIfPresent(c, ctrl.storage)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, token, err := ctrl.authService.RegisterStudent(c.Request.Context(), &req, picRef)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		Success: true,
		Message: "Student registered successfully",
		Token:   token,
		User:    dto.NewStudentSummary(student),
	})
}

// Login handles POST /api/student/login.
func (ctrl *StudentController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return
	}

	student, token, err := ctrl.authService.LoginStudent(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentLoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		Student: dto.NewStudentSummary(student),
	})
}

// GetProfile handles GET /api/student/profile for the authenticated
// student.
func (ctrl *StudentController) GetProfile(c *gin.Context) {
	student, err := ctrl.studentService.Get(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentResponse{
		Success: true,
		Student: dto.NewStudentSummary(student),
	})
}

// UpdateProfile handles PUT /api/student/profile. Only the supplied
// fields change; the admission number is not self-editable.
func (ctrl *StudentController) UpdateProfile(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return
	}

	picRef, err := savePicIfPresent(c, ctrl.storage)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, err := ctrl.profileService.Update(c.Request.Context(), middleware.AccountID(c), &req, picRef, services.UpdateOptions{
		AllowAdmissionChange: false,
	})
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentResponse{
		Success: true,
		Message: "Profile updated successfully",
		Student: dto.NewStudentSummary(student),
	})
}
