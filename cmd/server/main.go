// Package main initializes and starts the TaskPro HTTP server, setting
// up configuration, logging, the database connection, repositories,
// services and handlers.
package main

import (
	"cmp"
	"fmt"
	"log"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/kvitkoaleksandr/TaskPro/internal/config"
	"github.com/kvitkoaleksandr/TaskPro/internal/db"
	"github.com/kvitkoaleksandr/TaskPro/internal/logger"
	"github.com/kvitkoaleksandr/TaskPro/internal/middleware"
	"github.com/kvitkoaleksandr/TaskPro/internal/repository"
	"github.com/kvitkoaleksandr/TaskPro/internal/server/handler/http"
	"github.com/kvitkoaleksandr/TaskPro/internal/service"
	"github.com/kvitkoaleksandr/TaskPro/internal/token"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Load environment configuration.
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(cfg.Database.DSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	taskRepo := repository.NewPostgresTaskRepository(postgresDB)
	commentRepo := repository.NewPostgresCommentRepository(postgresDB)

	// Token manager for issuing and verifying bearer tokens.
	jwtManager := token.NewJWT(cfg.JWT.Secret)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, jwtManager, zapLogger)
	taskService := service.NewTaskService(taskRepo, userRepo, zapLogger)
	commentService := service.NewCommentService(commentRepo, taskRepo, zapLogger)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService, Logger: zapLogger}
	taskHandler := &http.TaskHandler{TaskService: taskService, Logger: zapLogger}
	commentHandler := &http.CommentHandler{CommentService: commentService, Logger: zapLogger}

	// Build the router with middleware and routes.
	authn := middleware.JWTAuth(jwtManager, userRepo)
	router := http.NewRouter(authHandler, taskHandler, commentHandler, authn, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
