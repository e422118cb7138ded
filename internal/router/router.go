package router

import (
	"net/http"
	"time"

	"github.com/examly/examly-backend/internal/config"
	"github.com/examly/examly-backend/internal/handler"
	"github.com/examly/examly-backend/internal/middleware"
	"github.com/examly/examly-backend/internal/response"
	"github.com/examly/examly-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Exam    *handler.ExamHandler
	Draft   *handler.DraftHandler
	Attempt *handler.AttemptHandler
	Monitor *handler.MonitorHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for login (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.GET("/me", middleware.RequireExaminerJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Student Group (No Auth) ────────────────────────────────────
	// Students reach the portal through the exam's shareable URL; identity
	// is collected per attempt, not per account.
	studentAPI := router.Group("/api/v1")
	{
		studentAPI.GET("/exams/:exam_id/paper", handlers.Attempt.Paper)
		studentAPI.POST("/exams/:exam_id/attempts", handlers.Attempt.Start)

		studentAPI.GET("/attempts/:attempt_id", handlers.Attempt.Get)
		studentAPI.POST("/attempts/:attempt_id/begin", handlers.Attempt.Begin)
		studentAPI.PUT("/attempts/:attempt_id/answers", handlers.Attempt.Answer)
		studentAPI.PUT("/attempts/:attempt_id/position", handlers.Attempt.Position)
		studentAPI.POST("/attempts/:attempt_id/submit", handlers.Attempt.Submit)
	}

	// ─── 3. WebSocket Group (Examiner WS Auth) ─────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireExaminerWSAuth(authService))
	{
		ws.GET("/admin/exams/:exam_id/monitor", handlers.Monitor.Stream)
	}

	// ─── 4. Admin Group (Examiner JWT) ─────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireExaminerJWT(authService))
	{
		// Exam management
		adminAPI.GET("/exams", handlers.Exam.List)
		adminAPI.POST("/exams", handlers.Exam.Create)
		adminAPI.GET("/exams/:exam_id", handlers.Exam.Get)
		adminAPI.PUT("/exams/:exam_id", handlers.Exam.Update)
		adminAPI.DELETE("/exams/:exam_id", handlers.Exam.Delete)
		adminAPI.GET("/exams/:exam_id/submissions", handlers.Exam.Submissions)
		adminAPI.GET("/exams/:exam_id/submissions/export", handlers.Exam.ExportCSV)

		// Draft authoring
		adminAPI.POST("/drafts", handlers.Draft.Upload)
		adminAPI.GET("/drafts/:draft_id", handlers.Draft.Get)
		adminAPI.DELETE("/drafts/:draft_id", handlers.Draft.Cancel)
		adminAPI.PUT("/drafts/:draft_id/title", handlers.Draft.SetTitle)
		adminAPI.POST("/drafts/:draft_id/publish", handlers.Draft.Publish)

		adminAPI.PUT("/drafts/:draft_id/questions/:index/text", handlers.Draft.EditQuestionText)
		adminAPI.PUT("/drafts/:draft_id/questions/:index/correct", handlers.Draft.SetCorrectOption)
		adminAPI.POST("/drafts/:draft_id/questions/:index/options", handlers.Draft.AddOption)
		adminAPI.PUT("/drafts/:draft_id/questions/:index/options/:option_id/text", handlers.Draft.EditOptionText)
		adminAPI.DELETE("/drafts/:draft_id/questions/:index/options/:option_id", handlers.Draft.RemoveOption)
	}

	return router
}
