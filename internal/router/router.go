package router

import (
	"net/http"
	"time"

	"github.com/drillbank/drillbank-backend/internal/config"
	"github.com/drillbank/drillbank-backend/internal/handler"
	"github.com/drillbank/drillbank-backend/internal/middleware"
	"github.com/drillbank/drillbank-backend/internal/response"
	"github.com/drillbank/drillbank-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Dashboard *handler.DashboardHandler
	Exam      *handler.ExamHandler
	Subject   *handler.SubjectHandler
	Question  *handler.QuestionHandler
	Import    *handler.ImportHandler
	WS        *handler.WSHandler
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
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
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

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/signup", handlers.Auth.Signup)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. User Group (JWT + Login Session) ───────────────────────────
	userAPI := router.Group("/api/v1")
	userAPI.Use(
		middleware.RequireUserJWT(authService),
		middleware.CheckLoginSession(authService),
	)
	{
		userAPI.GET("/dashboard", handlers.Dashboard.Get)

		userAPI.POST("/exam/setup", handlers.Exam.Setup)
		userAPI.GET("/exam/state", handlers.Exam.State)
		userAPI.GET("/exam/questions/:index", handlers.Exam.Question)
		userAPI.POST("/exam/questions/:index", handlers.Exam.Answer)
		userAPI.GET("/exam/result", handlers.Exam.Result)
	}

	// ─── 3. WebSocket Group (WS Auth) ──────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/exam/timer", handlers.WS.TimerStream)
	}

	// ─── 4. Admin Group (JWT, admin token) ─────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Subject management
		adminAPI.GET("/subjects", handlers.Subject.List)
		adminAPI.POST("/subjects", handlers.Subject.Create)
		adminAPI.PUT("/subjects/:id", handlers.Subject.Update)
		adminAPI.DELETE("/subjects/:id", handlers.Subject.Delete)

		// Question management
		adminAPI.GET("/questions", handlers.Question.List)
		adminAPI.POST("/questions", handlers.Question.Create)
		adminAPI.GET("/questions/:id", handlers.Question.Get)
		adminAPI.PUT("/questions/:id", handlers.Question.Update)
		adminAPI.DELETE("/questions/:id", handlers.Question.Delete)

		// Bulk import
		adminAPI.POST("/imports", handlers.Import.Import)
		adminAPI.GET("/imports", handlers.Import.ListBatches)
		adminAPI.DELETE("/imports/:id", handlers.Import.DeleteBatch)
	}

	return router
}
