package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuswordle/internal/config"
	"campuswordle/internal/database"
	"campuswordle/internal/handlers"
	"campuswordle/internal/repository"
	"campuswordle/internal/security"
	"campuswordle/internal/service"
	"campuswordle/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Token manager
	tokens, err := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to create token manager: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	puzzleRepo := repository.NewPuzzleRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to create email service: %v", err)
	}
	authService := service.NewAuthService(userRepo, statsRepo, tokens, emailService)
	gameService := service.NewGameService(puzzleRepo, attemptRepo, statsRepo)
	rankingService := service.NewRankingService(attemptRepo)
	adminService := service.NewAdminService(adminRepo, userRepo, puzzleRepo, attemptRepo, tokens)

	// Initialize handlers
	oauthProviders := handlers.BuildOAuthProviders(cfg)
	authHandler := handlers.NewAuthHandler(authService, oauthProviders, cfg.OAuthRedirectBaseURL, cfg.AppBaseURL)
	gameHandler := handlers.NewGameHandler(gameService)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	adminHandler := handlers.NewAdminHandler(adminService)

	limiter := security.NewRateLimiter(30, time.Minute)
	middleware := handlers.NewMiddleware(authService, tokens, limiter)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/guest", middleware.RateLimit(authHandler.Guest))
	mux.HandleFunc("POST /api/auth/claim", middleware.RequireUser(authHandler.Claim))
	mux.HandleFunc("POST /api/auth/phone", middleware.RequireUser(authHandler.Phone))
	mux.HandleFunc("GET /api/auth/me", middleware.RequireUser(authHandler.Me))

	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	mux.HandleFunc("GET /api/game", middleware.RequireUser(gameHandler.GetGame))
	mux.HandleFunc("POST /api/game/{id}/guess", middleware.RequireUser(gameHandler.SubmitGuess))
	mux.HandleFunc("GET /api/levels", middleware.RequireUser(gameHandler.GetLevels))
	mux.HandleFunc("GET /api/levels/completed", middleware.RequireUser(gameHandler.GetCompletedLevels))

	mux.HandleFunc("GET /api/rankings", middleware.RequireUser(rankingHandler.Overall))
	mux.HandleFunc("GET /api/rankings/games", middleware.RequireUser(rankingHandler.Games))
	mux.HandleFunc("GET /api/rankings/game/{id}", middleware.RequireUser(rankingHandler.Game))
	mux.HandleFunc("GET /api/rankings/me", middleware.RequireUser(rankingHandler.Me))

	mux.HandleFunc("POST /api/admin/setup", middleware.RateLimit(adminHandler.Setup))
	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(adminHandler.Login))
	mux.HandleFunc("GET /api/admin/overview", middleware.RequireAdmin(adminHandler.Overview))
	mux.HandleFunc("GET /api/admin/puzzles", middleware.RequireAdmin(adminHandler.ListPuzzles))
	mux.HandleFunc("POST /api/admin/puzzles", middleware.RequireAdmin(adminHandler.CreatePuzzle))
	mux.HandleFunc("POST /api/admin/puzzles/{id}/toggle", middleware.RequireAdmin(adminHandler.TogglePuzzle))
	mux.HandleFunc("DELETE /api/admin/puzzles/{id}", middleware.RequireAdmin(adminHandler.DeletePuzzle))
	mux.HandleFunc("GET /api/admin/users", middleware.RequireAdmin(adminHandler.ListUsers))
	mux.HandleFunc("DELETE /api/admin/users/{id}", middleware.RequireAdmin(adminHandler.DeleteUser))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
