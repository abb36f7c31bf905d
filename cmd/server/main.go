package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bankledger/internal/config"
	"bankledger/internal/database"
	"bankledger/internal/handlers"
	"bankledger/internal/middleware"
	"bankledger/internal/repositories"
	"bankledger/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Repositories
	accountRepo := repositories.NewAccountRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	statementRepo := repositories.NewStatementRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	// Services
	metrics := services.NewPrometheusMetrics()
	artifactWriter := services.NewFileArtifactWriter(cfg.Ledger.StatementArtifactDir)
	accountService := services.NewAccountService(accountRepo, auditRepo, metrics, logger)
	ledgerService := services.NewLedgerService(ledgerRepo, transactionRepo, auditRepo, metrics, logger)
	statementService := services.NewStatementService(statementRepo, transactionRepo, accountRepo, auditRepo, artifactWriter, metrics, logger)

	// Handlers
	accountHandler := handlers.NewAccountHandler(accountService, cfg.Ledger.DefaultOpeningBalance)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	statementHandler := handlers.NewStatementHandler(statementService)
	healthHandler := handlers.NewHealthHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
	}))
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))

	e.GET("/health", healthHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")

	v1.POST("/accounts", accountHandler.OpenAccount)
	v1.GET("/accounts/:accountId", accountHandler.GetAccount)
	v1.GET("/accounts/:accountId/balance", accountHandler.GetBalance)
	v1.DELETE("/accounts/:accountId", accountHandler.CloseAccount)
	v1.GET("/owners/:ownerId/accounts", accountHandler.GetOwnerAccounts)

	v1.POST("/accounts/:accountId/deposits", ledgerHandler.Deposit)
	v1.POST("/accounts/:accountId/withdrawals", ledgerHandler.Withdraw)
	v1.POST("/transfers", ledgerHandler.Transfer)
	v1.GET("/accounts/:accountId/entries", ledgerHandler.GetEntries)

	v1.POST("/accounts/:accountId/statements", statementHandler.GenerateStatement)
	v1.GET("/accounts/:accountId/statements", statementHandler.GetStatements)
	v1.GET("/statements/:statementId", statementHandler.GetStatement)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", "addr", server.Addr, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}
