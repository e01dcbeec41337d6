package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/recipebook/backend/docs"
	"github.com/recipebook/backend/internal/auth"
	"github.com/recipebook/backend/internal/config"
	"github.com/recipebook/backend/internal/handlers"
	"github.com/recipebook/backend/internal/logger"
	"github.com/recipebook/backend/internal/middleware"
	"github.com/recipebook/backend/internal/repositories"
	"github.com/recipebook/backend/internal/services"
	"github.com/recipebook/backend/internal/storage"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const (
	rateLimitRequests = 100
	rateLimitWindow   = time.Minute
	migrationsTable   = "recipe_schema_migrations"
)

// @title Recipes API
// @version 1.0
// @description API for browsing, searching and managing recipes, their comments and user accounts

// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Recipes API")

	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	imageStorage := storage.NewLocalStorage(cfg.Upload.Dir)

	r := setupRouter(cfg, db, tokenGenerator, imageStorage, logger.Logger)

	cleaner, err := newUploadCleaner(cfg, db, imageStorage, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to create upload cleaner", zap.Error(err))
	}
	if cleaner != nil {
		cleaner.Start()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if cleaner != nil {
		cleaner.Stop()
	}

	logger.Logger.Info("Server exited")
}

// newUploadCleaner returns nil when the sweeper is disabled
func newUploadCleaner(cfg *config.Config, db *sql.DB, store services.UploadStore, appLogger *zap.Logger) (*services.UploadCleaner, error) {
	if cfg.Upload.CleanupSchedule == "" {
		appLogger.Info("Upload cleaner disabled")
		return nil, nil
	}
	recipeRepo := repositories.NewRecipeRepository(db, appLogger)
	return services.NewUploadCleaner(recipeRepo, store, cfg.Upload.CleanupSchedule, cfg.Upload.CleanupMinAge, appLogger)
}

// setupRouter wires repositories, services and handlers into a chi router
// behind the shared middleware stack
func setupRouter(
	cfg *config.Config,
	db *sql.DB,
	tokenGenerator *auth.TokenGenerator,
	imageStorage services.ImageStorage,
	appLogger *zap.Logger,
) chi.Router {
	recipeRepo := repositories.NewRecipeRepository(db, appLogger)
	commentRepo := repositories.NewCommentRepository(db, appLogger)
	userRepo := repositories.NewUserRepository(db, appLogger)

	recipeService := services.NewRecipeService(recipeRepo, imageStorage, appLogger)
	commentService := services.NewCommentService(commentRepo)
	authService := services.NewAuthService(userRepo, tokenGenerator, appLogger)
	userService := services.NewUserService(userRepo)

	indexHandler := handlers.NewIndexHandler(appLogger)
	recipeHandler := handlers.NewRecipeHandler(recipeService, appLogger)
	commentHandler := handlers.NewCommentHandler(commentService, appLogger)
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	userHandler := handlers.NewUserHandler(userService, appLogger)

	authMiddleware := middleware.AuthMiddleware(tokenGenerator)

	r := chi.NewRouter()

	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(appLogger))
	r.Use(middleware.RecoveryMiddleware(appLogger))
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(rateLimitRequests, rateLimitWindow))
	r.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize))

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Handle("/metrics", middleware.MetricsHandler())
	r.Handle("/uploads/*", http.StripPrefix(storage.URLPrefix, storage.FileServer(cfg.Upload.Dir)))

	indexHandler.RegisterRoutes(r)
	recipeHandler.RegisterRoutes(r, authMiddleware)
	commentHandler.RegisterRoutes(r)
	authHandler.RegisterRoutes(r)
	userHandler.RegisterRoutes(r, authMiddleware)

	return r
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations applies pending migrations from the migrations directory
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: migrationsTable,
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Running from cmd/ finds the directory one level up
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
