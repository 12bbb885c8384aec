package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/lakkaru/eksath-samithiya-backend/internal/accrual"
	"github.com/lakkaru/eksath-samithiya-backend/internal/config"
	"github.com/lakkaru/eksath-samithiya-backend/internal/jobs"
	"github.com/lakkaru/eksath-samithiya-backend/internal/logger"
	"github.com/lakkaru/eksath-samithiya-backend/internal/repository/postgres"
	"github.com/lakkaru/eksath-samithiya-backend/internal/scheduler"
	"github.com/lakkaru/eksath-samithiya-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'blacklist-guarantors', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Samithiya Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	calc := accrual.NewCalculator(accrual.Terms{
		MonthlyRate: cfg.Association.LoanInterestRate(),
		TermMonths:  cfg.Association.LoanTermMonths,
		Principal:   cfg.Association.LoanPrincipal,
	})
	loanService := service.NewLoanService(
		store.LoanRepository,
		store.LoanPaymentRepository,
		store.MemberRepository,
		calc,
		cfg.Association.LoanPrincipal,
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Loan: loanService,
	}, cfg)

	// Handle run-once mode
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "blacklist-guarantors":
		jobRunner.BlacklistOverdueGuarantors()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - blacklist-guarantors\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}
