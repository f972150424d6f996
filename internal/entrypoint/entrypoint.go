package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"libraryapi/internal/auth"
	"libraryapi/internal/config"
	"libraryapi/internal/database"
	"libraryapi/internal/entities"
	http_controllers "libraryapi/internal/http"
	"libraryapi/internal/maintenance"
	"libraryapi/internal/repository"
	"libraryapi/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting library API v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookService := services.NewBookService(repository.New[entities.Book](db.DB))
	userService := services.NewUserService(repository.New[entities.User](db.DB), cfg.Auth.BcryptCost)

	if err := seedFirstAdmin(userService, cfg.Auth); err != nil {
		log.Fatalf("Failed to seed first admin user: %v", err)
	}

	// Get underlying SQL DB for session store
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}

	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	authMiddleware := auth.NewMiddleware(userService, sessionManager)
	loginLimiter := auth.NewRateLimiter(auth.DefaultRateLimitConfig())

	var scheduler *maintenance.Scheduler
	if cfg.Maintenance.Enabled {
		scheduler = maintenance.NewScheduler(db)
		if err := scheduler.Start(cfg.Maintenance.Schedule); err != nil {
			log.Fatalf("Failed to start maintenance scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Books:          bookService,
		Users:          userService,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		LoginLimiter:   loginLimiter,
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		if scheduler != nil {
			scheduler.Stop()
		}
		loginLimiter.Stop()
	}

	Serve(router, cfg, onShutdown)
}

// seedFirstAdmin creates the bootstrap administrator account when the
// users table is empty and credentials are configured.
func seedFirstAdmin(users *services.UserService, cfg config.Auth) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	count, err := users.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	isAdmin := true
	_, err = users.Create(services.UserCreate{
		Email:    cfg.FirstAdminEmail,
		Password: cfg.FirstAdminPassword,
		FullName: cfg.FirstAdminFullName,
		IsAdmin:  &isAdmin,
	})
	if err != nil {
		return err
	}
	log.Printf("Created first admin user %s", cfg.FirstAdminEmail)
	return nil
}
