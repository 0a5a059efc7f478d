package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/packdb-backend/internal/handlers"
	"github.com/yungbote/packdb-backend/internal/middleware"
)

type RouterConfig struct {
	CORSOrigins           []string
	AuthMiddleware        *middleware.AuthMiddleware
	AuthHandler           *handlers.AuthHandler
	PackHandler           *handlers.PackHandler
	DomainHandler         *handlers.DomainHandler
	FieldHandler          *handlers.FieldHandler
	ValueHandler          *handlers.ValueHandler
	CommentHandler        *handlers.CommentHandler
	CompareHandler        *handlers.CompareHandler
	SourcePriorityHandler *handlers.SourcePriorityHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	protected.GET("/auth/me", cfg.AuthHandler.GetMe)
	// Packs
	protected.GET("/packs", cfg.PackHandler.List)
	protected.POST("/packs", cfg.PackHandler.Create)
	protected.GET("/packs/:id", cfg.PackHandler.GetDetail)
	protected.PUT("/packs/:id", cfg.PackHandler.Update)
	protected.DELETE("/packs/:id", cfg.PackHandler.Delete)
	// Pack values
	protected.GET("/packs/:id/values", cfg.ValueHandler.GetPackValues)
	protected.POST("/packs/:id/values", cfg.ValueHandler.Create)
	protected.PUT("/values/:id", cfg.ValueHandler.Update)
	protected.DELETE("/values/:id", cfg.ValueHandler.Delete)
	// Comments
	protected.GET("/values/:id/comments", cfg.CommentHandler.List)
	protected.POST("/values/:id/comments", cfg.CommentHandler.Create)
	// Domains and fields
	protected.GET("/domains", cfg.DomainHandler.List)
	protected.POST("/domains", cfg.DomainHandler.Create)
	protected.GET("/domains/:id/fields", cfg.DomainHandler.ListFields)
	protected.POST("/domains/:id/fields", cfg.DomainHandler.CreateField)
	protected.PUT("/fields/:id", cfg.FieldHandler.Update)
	protected.DELETE("/fields/:id", cfg.FieldHandler.Delete)
	// Comparison
	protected.GET("/compare", cfg.CompareHandler.Compare)
	// Preferences
	protected.GET("/preferences/sources", cfg.SourcePriorityHandler.Get)
	protected.PUT("/preferences/sources", cfg.SourcePriorityHandler.Update)

	return router
}
