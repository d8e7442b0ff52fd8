// Package main initializes and starts the finflow API server, setting up
// configuration, logging, the database connection, repositories, services,
// handlers, and the HTTP server.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/finflow/finflow/internal/config"
	"github.com/finflow/finflow/internal/db"
	"github.com/finflow/finflow/internal/logger"
	"github.com/finflow/finflow/internal/repository"
	"github.com/finflow/finflow/internal/security"
	"github.com/finflow/finflow/internal/server/handler/http"
	"github.com/finflow/finflow/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	if version == "" {
		version = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	fmt.Printf("Build version: %s\n", version)
	fmt.Printf("Build date: %s\n", buildDate)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize the MySQL connection pool. Schema and seed data come from
	// the dump mounted into the database container.
	mysqlDB, err := db.InitMySQL(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Build the token issuer from configuration.
	issuer, err := security.NewTokenIssuer(
		options.SecretKey,
		options.Algorithm,
		time.Duration(options.AccessTokenExpireMinutes)*time.Minute,
	)
	if err != nil {
		zapLogger.Fatal("cannot init token issuer", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Record portfolio valuations in the background.
	db.StartValueSnapshotRecorder(ctx, mysqlDB, time.Hour, zapLogger)

	// Initialize repositories.
	userRepo := repository.NewMySQLUserRepository(mysqlDB)
	portfolioRepo := repository.NewMySQLPortfolioRepository(mysqlDB)
	holdingRepo := repository.NewMySQLHoldingRepository(mysqlDB)
	transactionRepo := repository.NewMySQLTransactionRepository(mysqlDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(userRepo, issuer)
	portfolioService := service.NewPortfolioService(portfolioRepo)
	assetService := service.NewAssetService(holdingRepo)
	transactionService := service.NewTransactionService(transactionRepo, portfolioRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	portfolioHandler := &http.PortfolioHandler{PortfolioService: portfolioService}
	assetHandler := &http.AssetHandler{AssetService: assetService}
	transactionHandler := &http.TransactionHandler{TransactionService: transactionService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, portfolioHandler, assetHandler, transactionHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("shutdown error", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
