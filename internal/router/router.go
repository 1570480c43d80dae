package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/edubase/edubase-backend/internal/config"
	"github.com/edubase/edubase-backend/internal/handler"
	"github.com/edubase/edubase-backend/internal/middleware"
	"github.com/edubase/edubase-backend/internal/response"
	"github.com/edubase/edubase-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Branch     *handler.BranchHandler
	Class      *handler.ClassHandler
	Subject    *handler.SubjectHandler
	Exam       *handler.ExamHandler
	Student    *handler.StudentHandler
	Mark       *handler.MarkHandler
	Attendance *handler.AttendanceHandler
	Grading    *handler.GradingHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", middleware.BranchHeader}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli and metrics middleware globally.
	router.Use(middleware.Brotli())
	router.Use(middleware.Metrics())

	// Health check and Prometheus scrape endpoint.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Auth group: public, rate limited.
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAdminJWT(authService), handlers.Auth.Me)
		auth.POST("/logout", middleware.RequireAdminJWT(authService), handlers.Auth.Logout)
	}

	// Branch administration: authenticated, but deliberately outside the
	// branch scope requirement. You need to see branches to pick one.
	branchAPI := router.Group("/api/v1/branches")
	branchAPI.Use(middleware.RequireAdminJWT(authService))
	{
		branchAPI.GET("", handlers.Branch.List)
		branchAPI.GET("/:id", handlers.Branch.Get)
		branchAPI.POST("", handlers.Branch.Create)
	}

	// Data routes: JWT plus a mandatory branch scope. Every query and
	// mutation below is confined to the branch named in X-Branch-ID.
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAdminJWT(authService), middleware.RequireBranch())
	{
		api.GET("/grading/bands", handlers.Grading.Bands)

		api.GET("/classes", handlers.Class.List)
		api.POST("/classes", handlers.Class.CreateClass)
		api.DELETE("/classes/:id", handlers.Class.DeleteClass)
		api.POST("/sections", handlers.Class.CreateSection)
		api.DELETE("/sections/:id", handlers.Class.DeleteSection)

		api.GET("/subjects", handlers.Subject.List)
		api.POST("/subjects", handlers.Subject.Create)
		api.DELETE("/subjects/:id", handlers.Subject.Delete)

		api.GET("/exams", handlers.Exam.List)
		api.GET("/exams/:id", handlers.Exam.Get)
		api.POST("/exams", handlers.Exam.Create)
		api.DELETE("/exams/:id", handlers.Exam.Delete)

		api.GET("/students", handlers.Student.List)
		api.GET("/students/:id", handlers.Student.Get)
		api.POST("/students", handlers.Student.Create)
		api.PUT("/students/:id", handlers.Student.Update)
		api.DELETE("/students/:id", handlers.Student.Delete)

		api.GET("/marks", handlers.Mark.List)
		api.POST("/marks", handlers.Mark.Create)
		api.PATCH("/marks/:id", handlers.Mark.Update)
		api.DELETE("/marks/:id", handlers.Mark.Delete)
		api.POST("/marks/bulk/:exam_id/:subject_id", handlers.Mark.BulkUpsert)
		api.GET("/marks/exam/:exam_id", handlers.Mark.ExamMarks)
		api.GET("/marks/student/:student_id", handlers.Mark.StudentMarks)

		api.GET("/attendance-records", handlers.Attendance.List)
		api.POST("/attendance-records", handlers.Attendance.Create)
		api.DELETE("/attendance-records/:id", handlers.Attendance.Delete)
		api.GET("/attendance-records/dashboard/stats", handlers.Attendance.DashboardStats)
		api.GET("/attendance-records/reports/class-section-summary", handlers.Attendance.ClassSectionSummary)
		api.GET("/attendance-records/analytics/trends", handlers.Attendance.Trends)
	}

	return router
}
