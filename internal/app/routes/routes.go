package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/schoolrecords/internal/app/controllers"
	"github.com/emre/schoolrecords/internal/app/models"
	"github.com/emre/schoolrecords/internal/middleware"
)

// SetupRoutes mounts the API surface under /api: public registration
// and login endpoints, the JWT-protected student profile pair and the
// admin roster CRUD.
func SetupRoutes(
	router *gin.Engine,
	studentController *controllers.StudentController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	student := api.Group("/student")
	{
		student.POST("/register", studentController.Register)
		student.POST("/login", studentController.Login)

		profile := student.Group("/profile")
		profile.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			profile.GET("", studentController.GetProfile)
			profile.PUT("", studentController.UpdateProfile)
		}
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login", adminController.Login)

		students := admin.Group("/students")
		students.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			students.GET("", adminController.ListStudents)
			students.POST("", adminController.CreateStudent)
			students.GET("/:id", adminController.GetStudent)
			students.PUT("/:id", adminController.UpdateStudent)
			students.DELETE("/:id", adminController.DeleteStudent)
		}
	}
}
