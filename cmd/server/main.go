package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/lakkaru/eksath-samithiya-backend/internal/accrual"
	httpapi "github.com/lakkaru/eksath-samithiya-backend/internal/api/http"
	"github.com/lakkaru/eksath-samithiya-backend/internal/config"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository/postgres"
	"github.com/lakkaru/eksath-samithiya-backend/internal/security"
	"github.com/lakkaru/eksath-samithiya-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Samithiya Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Loan calculator shared by every endpoint
	calc := accrual.NewCalculator(accrual.Terms{
		MonthlyRate: cfg.Association.LoanInterestRate(),
		TermMonths:  cfg.Association.LoanTermMonths,
		Principal:   cfg.Association.LoanPrincipal,
	})

	// Initialize Services
	loanSvc := service.NewLoanService(
		store.LoanRepository,
		store.LoanPaymentRepository,
		store.MemberRepository,
		calc,
		cfg.Association.LoanPrincipal,
	)
	duesSvc := service.NewDuesService(
		store.MemberRepository,
		store.LoanRepository,
		store.LoanPaymentRepository,
		store.MembershipPaymentRepository,
		calc,
		cfg.Association.MonthlyMembership,
	)
	memberSvc := service.NewMemberService(store.MemberRepository)
	funeralSvc := service.NewFuneralService(
		store.FuneralRepository,
		store.MemberRepository,
		cfg.Association.FuneralFine,
		cfg.Association.FuneralWorkFine,
	)
	attendanceSvc := service.NewAttendanceService(
		store.MeetingRepository,
		store.MemberRepository,
		cfg.Association.MeetingFine,
		cfg.Association.MeetingFineInterval,
	)
	receiptSvc := service.NewReceiptService(
		store.MemberRepository,
		store.MembershipPaymentRepository,
		store.FinePaymentRepository,
	)
	financeSvc := service.NewFinanceService(store.IncomeRepository, store.ExpenseRepository,
		store.PeriodBalanceRepository, cfg.Association.InitialCashOnHand, cfg.Association.InitialBankDeposit)
	authSvc := service.NewAuthService(store.OfficerRepository, tokenManager)
	officerSvc := service.NewOfficerService(store.OfficerRepository, store.MemberRepository)

	// Initialize HTTP API
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:       httpapi.NewAuthHandler(authSvc),
		Member:     httpapi.NewMemberHandler(memberSvc, duesSvc),
		Loan:       httpapi.NewLoanHandler(loanSvc),
		Funeral:    httpapi.NewFuneralHandler(funeralSvc),
		Attendance: httpapi.NewAttendanceHandler(attendanceSvc),
		Receipt:    httpapi.NewReceiptHandler(receiptSvc),
		Finance:    httpapi.NewFinanceHandler(financeSvc),
		Officer:    httpapi.NewOfficerHandler(officerSvc),
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
