package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"acadtrack_backend/authz"
	"acadtrack_backend/handlers"
	"acadtrack_backend/middleware"
	"acadtrack_backend/models"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, db *sql.DB, ts *middleware.TokenService, secureCookie bool) {
	az := authz.New(db)

	authHandler := handlers.NewAuthHandler(db, ts, secureCookie)
	batchHandler := handlers.NewBatchHandler(db)
	subjectHandler := handlers.NewSubjectHandler(db)
	userHandler := handlers.NewUserHandler(db, az)
	assignmentHandler := handlers.NewAssignmentHandler(db, az)
	studentHandler := handlers.NewStudentHandler(db, az)
	attendanceHandler := handlers.NewAttendanceHandler(db, az)
	markHandler := handlers.NewMarkHandler(db, az)
	reportHandler := handlers.NewReportHandler(db, az)
	metaHandler := handlers.NewMetaHandler(db, az)

	// Public routes
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/register", authHandler.Register)

	// Protected routes
	protected := r.Group("/")
	protected.Use(middleware.Authenticate(ts))
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		// Shared metadata reads, role-filtered inside the handlers
		protected.GET("/meta/batches", metaHandler.Batches)
		protected.GET("/meta/subjects", metaHandler.Subjects)
		protected.GET("/meta/students", metaHandler.Students)

		// Marks listing serves both lecturers and students
		protected.GET("/marks", markHandler.List)
	}

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/batches", batchHandler.List)
		admin.POST("/batches", batchHandler.Create)
		admin.PATCH("/batches/:id", batchHandler.Update)
		admin.DELETE("/batches/:id", batchHandler.Delete)

		admin.GET("/subjects", subjectHandler.List)
		admin.POST("/subjects", subjectHandler.Create)
		admin.PATCH("/subjects/:id", subjectHandler.Update)
		admin.DELETE("/subjects/:id", subjectHandler.Delete)

		admin.GET("/users", userHandler.List)
		admin.POST("/users", userHandler.Create)
		admin.PATCH("/users/:id", userHandler.Update)
		admin.DELETE("/users/:id", userHandler.Delete)

		admin.GET("/assignments", assignmentHandler.List)
		admin.POST("/assignments", assignmentHandler.Create)
		admin.DELETE("/assignments/:id", assignmentHandler.Delete)
	}

	// Lecturer routes
	lecturer := protected.Group("/")
	lecturer.Use(middleware.RequireRole(models.RoleLecturer))
	{
		lecturer.GET("/lecturer/students", studentHandler.List)
		lecturer.POST("/lecturer/students", studentHandler.Enroll)

		lecturer.GET("/attendance", attendanceHandler.Get)
		lecturer.POST("/attendance", attendanceHandler.Save)

		lecturer.POST("/marks", markHandler.Create)

		lecturer.GET("/reports/attendance", reportHandler.Attendance)
		lecturer.GET("/reports/marks", reportHandler.Marks)
	}

	// Student routes
	student := protected.Group("/student")
	student.Use(middleware.RequireRole(models.RoleStudent))
	{
		student.GET("/attendance", attendanceHandler.Summary)
		student.GET("/attendance-details", attendanceHandler.Details)
	}
}
