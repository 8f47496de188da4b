package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sanjay-M1512/RAG-ADMIN/internal/http/handlers"
	"github.com/Sanjay-M1512/RAG-ADMIN/internal/http/middleware"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	DocumentHandler *handlers.DocumentHandler
	AuthMiddleware  *middleware.AuthMiddleware
	// MaxUploadBytes caps request bodies at the transport boundary so one
	// oversized upload cannot exhaust per-request memory.
	MaxUploadBytes int64
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	if cfg.MaxUploadBytes > 0 {
		router.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadBytes)
			c.Next()
		})
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	admin := router.Group("/admin")
	{
		// Auth
		admin.POST("/register", cfg.AuthHandler.Register)
		admin.POST("/login", cfg.AuthHandler.Login)
		admin.POST("/logout", cfg.AuthHandler.Logout)

		// Documents (public, matching the original surface)
		admin.POST("/upload", cfg.DocumentHandler.Upload)
		admin.GET("/documents", cfg.DocumentHandler.List)
		admin.PUT("/document/:document_id", cfg.DocumentHandler.Update)
		admin.DELETE("/document/:document_id", cfg.DocumentHandler.Delete)
		admin.GET("/stateboard/documents", cfg.DocumentHandler.ListStateboard)
		admin.GET("/cbse/documents", cfg.DocumentHandler.ListCBSE)

		// Profile (JWT only here)
		protected := admin.Group("/")
		protected.Use(cfg.AuthMiddleware.RequireAuth())
		protected.GET("/profile", cfg.AuthHandler.Profile)
		protected.PUT("/update-profile", cfg.AuthHandler.UpdateProfile)
	}

	return router
}
