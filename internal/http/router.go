package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mockmate/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	jwtSvc *service.JWTService,
	authH *AuthHandler,
	profileH *ProfileHandler,
	catalogH *CatalogHandler,
	sessionH *SessionHandler,
	taskH *TaskHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/register", authH.Register)
	auth.POST("/forgot-password", authH.ForgotPassword)
	auth.POST("/verify-otp", authH.VerifyOTP)
	auth.POST("/reset-password", authH.ResetPassword)
	auth.POST("/social-login", authH.SocialLogin)

	catalog := api.Group("/catalog")
	catalog.GET("/categories", catalogH.ListCategories)
	catalog.GET("/categories/:id/positions", catalogH.ListPositions)

	protected := api.Group("")
	protected.Use(JWTAuthMiddleware(jwtSvc))

	profile := protected.Group("/profile")
	profile.GET("/me", profileH.Me)
	profile.PATCH("/avatar", profileH.UpdateAvatar)

	sessions := protected.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("", sessionH.List)
	sessions.GET("/:id", sessionH.Get)
	sessions.POST("/:id/finish", sessionH.Finish)

	tasks := protected.Group("/tasks")
	tasks.POST("", taskH.Create)
	tasks.GET("", taskH.List)
	tasks.PATCH("/:id/status", taskH.UpdateStatus)
	tasks.DELETE("/:id", taskH.Delete)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
