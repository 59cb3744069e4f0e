package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emre/schoolrecords/internal/app/models/dto"
	"github.com/emre/schoolrecords/internal/app/services"
	"github.com/emre/schoolrecords/internal/middleware"
	"github.com/emre/schoolrecords/internal/pkg/apperrors"
	"github.com/emre/schoolrecords/internal/pkg/filestorage"
)

// AdminController handles admin login and the admin-facing student
// roster CRUD.
type AdminController struct {
	authService    *services.AuthService
	studentService *services.StudentService
	profileService *services.ProfileUpdateService
	storage        filestorage.FileStorage
}

// NewAdminController creates a new AdminController
func NewAdminController(
	authService *services.AuthService,
	studentService *services.StudentService,
	profileService *services.ProfileUpdateService,
	storage filestorage.FileStorage,
) *AdminController {
	return &AdminController{
		authService:    authService,
		studentService: studentService,
		profileService: profileService,
		storage:        storage,
	}
}

// studentIDParam parses the :id path parameter.
func studentIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewMalformedIDError("Invalid student ID format")
	}
	return id, nil
}

// Login handles POST /api/admin/login.
func (ctrl *AdminController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.HandleBindingError(err))
		return
	}

	admin, token, err := ctrl.authService.LoginAdmin(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AdminLoginResponse{
		Success: true,
		Message: "Admin login successful",
		Token:   token,
		Admin:   dto.NewAdminSummary(admin),
	})
}

// ListStudents handles GET /api/admin/students. The optional "search"
// query matches name, email, admission number and class.
func (ctrl *AdminController) ListStudents(c *gin.Context) {
	students, err := ctrl.studentService.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	summaries := make([]*dto.StudentSummary, 0, len(students))
	for _, s := range students {
		summaries = append(summaries, dto.NewStudentSummary(s))
	}

	c.JSON(http.StatusOK, dto.StudentListResponse{
		Success:  true,
		Count:    len(summaries),
		Students: summaries,
	})
}

// GetStudent handles GET /api/admin/students/:id.
func (ctrl *AdminController) GetStudent(c *gin.Context) {
	id, err := studentIDParam(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	student, err := ctrl.studentService.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentResponse{
		Success: true,
		Student: dto.NewStudentSummary(student),
	})
}

// CreateStudent handles POST /api/admin/students. Same rules as
// self-registration, but no session token is issued.
func (ctrl *AdminController) CreateStudent(c *gin.Context) {
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

	student, err := ctrl.studentService.Create(c.Request.Context(), &req, picRef)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.StudentResponse{
		Success: true,
		Message: "Student created successfully",
		Student: dto.NewStudentSummary(student),
	})
}

// UpdateStudent handles PUT /api/admin/students/:id. Admins may change
// any field, the admission number included.
func (ctrl *AdminController) UpdateStudent(c *gin.Context) {
	id, err := studentIDParam(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

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

	student, err := ctrl.profileService.Update(c.Request.Context(), id, &req, picRef, services.UpdateOptions{
		AllowAdmissionChange: true,
	})
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StudentResponse{
		Success: true,
		Message: "Student updated successfully",
		Student: dto.NewStudentSummary(student),
	})
}

// DeleteStudent handles DELETE /api/admin/students/:id.
func (ctrl *AdminController) DeleteStudent(c *gin.Context) {
	id, err := studentIDParam(c)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	deleted, err := ctrl.studentService.Delete(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteStudentResponse{
		Success: true,
		Message: "Student deleted successfully",
		DeletedStudent: &dto.DeletedStudent{
			ID:    deleted.ID,
			Name:  deleted.Name,
			Email: deleted.Email,
		},
	})
}
