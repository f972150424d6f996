package http

import (
	"github.com/gin-gonic/gin"

	"libraryapi/internal/auth"
	"libraryapi/internal/database"
	"libraryapi/internal/services"
)

// RouterConfig carries all router dependencies, improving testability
// and reducing parameter count.
type RouterConfig struct {
	Database       *database.Database
	Books          *services.BookService
	Users          *services.UserService
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	LoginLimiter   *auth.RateLimiter // nil disables login throttling
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware())

	// Session must load before any guard reads it
	router.Use(cfg.SessionManager.SessionLoadSave())

	health := NewHealthController(cfg.Database, cfg.Version)
	authController := auth.NewController(cfg.Users, cfg.SessionManager, cfg.LoginLimiter)
	booksController := NewBooksController(cfg.Books)
	usersController := NewUsersController(cfg.Users)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/logout", authController.Logout)

	requireActive := cfg.AuthMiddleware.RequireActiveUser()
	requireAdmin := cfg.AuthMiddleware.RequireAdminUser()

	books := v1.Group("/books", requireActive)
	books.GET("", booksController.List)
	books.POST("", requireAdmin, booksController.Create)
	books.GET("/:id", booksController.GetByID)
	books.PUT("/:id", requireAdmin, booksController.Update)
	books.DELETE("/:id", requireAdmin, booksController.Delete)
	books.GET("/search/title/:title", booksController.SearchByTitle)
	books.GET("/search/author/:author", booksController.SearchByAuthor)
	books.GET("/search/isbn/:isbn", booksController.SearchByISBN)

	users := v1.Group("/users", requireActive)
	users.GET("", requireAdmin, usersController.List)
	users.POST("", requireAdmin, usersController.Create)
	users.GET("/me", usersController.Me)
	users.PUT("/me", usersController.UpdateMe)
	users.GET("/by-email/:email", requireAdmin, usersController.GetByEmail)
	users.GET("/:id", requireAdmin, usersController.GetByID)
	users.PUT("/:id", requireAdmin, usersController.Update)
	users.DELETE("/:id", requireAdmin, usersController.Delete)

	return router
}
