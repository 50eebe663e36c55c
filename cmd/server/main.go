package main

import (
	"log"
	"time"

	"court_establishment_go/config"
	"court_establishment_go/db"
	"court_establishment_go/handlers"
	"court_establishment_go/middleware"
	"court_establishment_go/models"
	"court_establishment_go/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	database, err := db.Initialize(cfg.DBPath, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed baseline data
	if _, err := services.EnsureRootDivision(database, cfg.RootDivisionName); err != nil {
		log.Fatalf("Failed to ensure root division: %v", err)
	}
	if err := services.SeedDefaultPosts(database); err != nil {
		log.Fatalf("Failed to seed posts: %v", err)
	}
	if err := services.SeedAdminFromEnv(database, cfg); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Snapshot backup storage
	services.InitializeBackupStorage(cfg)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Public routes
	e.POST("/api/login", handlers.LoginHandler, middleware.LoginRateLimiter.Middleware())

	// Authenticated routes
	api := e.Group("/api")
	api.Use(middleware.RequireAuth())
	api.Use(middleware.APIRateLimiter.Middleware())
	{
		api.POST("/logout", handlers.LogoutHandler)
		api.GET("/me", handlers.GetCurrentUserHandler)
		api.POST("/me/password", handlers.ChangePasswordHandler)

		// Read operations (all roles)
		api.GET("/divisions", handlers.ListDivisionsHandler)
		api.GET("/divisions/:id", handlers.GetDivisionHandler)
		api.GET("/divisions/:id/courts", handlers.ListDivisionCourtsHandler)
		api.GET("/courts", handlers.ListCourtsHandler)
		api.GET("/courts/:id", handlers.GetCourtHandler)
		api.GET("/courts/:id/posts", handlers.ListCourtPostsHandler)
		api.GET("/posts", handlers.ListPostsHandler)
		api.GET("/employees", handlers.ListEmployeesHandler)
		api.GET("/employees/retiring", handlers.ListRetiringEmployeesHandler)
		api.GET("/stats", handlers.StatsHandler)
		api.GET("/courts/:id/roster.csv", handlers.ExportRosterCSVHandler)
		api.GET("/courts/:id/roster.xlsx", handlers.ExportRosterXLSXHandler)

		// Write operations (admin and user roles)
		writes := api.Group("")
		writes.Use(middleware.RequireRole(models.RoleAdmin, models.RoleUser))
		{
			writes.POST("/employees", handlers.CreateEmployeeHandler)
			writes.PUT("/employees/:id", handlers.UpdateEmployeeHandler)
			writes.POST("/employees/:id/transfer", handlers.TransferEmployeeHandler)
			writes.DELETE("/employees/:id", handlers.TerminateEmployeeHandler)
			writes.POST("/employees/:id/retirement/recompute", handlers.RecomputeRetirementHandler)
		}

		// Admin-only routes
		admin := api.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.POST("/divisions", handlers.CreateDivisionHandler)
			admin.POST("/courts", handlers.CreateCourtHandler)
			admin.PUT("/courts/:id", handlers.UpdateCourtHandler)
			admin.POST("/posts", handlers.CreatePostHandler)
			admin.PUT("/courts/:id/posts/:postID/sanctioned", handlers.SetSanctionedHandler)
			admin.POST("/users", handlers.RegisterUserHandler)
			admin.GET("/users", handlers.ListUsersHandler)
			admin.GET("/snapshot", handlers.ExportSnapshotHandler, middleware.SnapshotRateLimiter.Middleware())
			admin.POST("/snapshot", handlers.ImportSnapshotHandler, middleware.SnapshotRateLimiter.Middleware())
		}
	}

	// Clean up expired sessions every hour
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredSessions(db.DB); err != nil {
				log.Printf("Error cleaning up expired sessions: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
