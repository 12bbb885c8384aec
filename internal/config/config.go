package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	JWT         JWTConfig         `yaml:"jwt"`
	Log         LogConfig         `yaml:"log"`
	Association AssociationConfig `yaml:"association"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// AssociationConfig holds the society's business constants in one place
// so the loan calculator, fine bookkeeping and dues aggregation all work
// from the same numbers instead of per-call-site copies.
type AssociationConfig struct {
	LoanMonthlyInterestRate string `yaml:"loan_monthly_interest_rate"` // decimal string, e.g. "0.03"
	LoanTermMonths          int    `yaml:"loan_term_months"`
	LoanPrincipal           int64  `yaml:"loan_principal"`

	MeetingFine         int64 `yaml:"meeting_fine"`
	FuneralFine         int64 `yaml:"funeral_fine"`
	FuneralWorkFine     int64 `yaml:"funeral_work_fine"`
	MonthlyMembership   int64 `yaml:"monthly_membership"`
	MeetingFineInterval int32 `yaml:"meeting_fine_interval"` // fine every Nth consecutive absence

	// Opening cash position, reported as the balance before the first
	// recorded period snapshot.
	InitialCashOnHand  int64 `yaml:"initial_cash_on_hand"`
	InitialBankDeposit int64 `yaml:"initial_bank_deposit"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	BlacklistGuarantors string `yaml:"blacklist_guarantors"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
// for the association constants.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	// Association defaults
	if c.Association.LoanMonthlyInterestRate == "" {
		c.Association.LoanMonthlyInterestRate = "0.03"
	}
	if _, err := decimal.NewFromString(c.Association.LoanMonthlyInterestRate); err != nil {
		return fmt.Errorf("invalid loan monthly interest rate: %w", err)
	}
	if c.Association.LoanTermMonths == 0 {
		c.Association.LoanTermMonths = 10
	}
	if c.Association.LoanPrincipal == 0 {
		c.Association.LoanPrincipal = 10000
	}
	if c.Association.MeetingFine == 0 {
		c.Association.MeetingFine = 500
	}
	if c.Association.FuneralFine == 0 {
		c.Association.FuneralFine = 100
	}
	if c.Association.FuneralWorkFine == 0 {
		c.Association.FuneralWorkFine = 500
	}
	if c.Association.MonthlyMembership == 0 {
		c.Association.MonthlyMembership = 300
	}
	if c.Association.MeetingFineInterval == 0 {
		c.Association.MeetingFineInterval = 3
	}

	// Scheduler defaults
	if c.Scheduler.BlacklistGuarantors == "" {
		c.Scheduler.BlacklistGuarantors = "0 0 2 * * *" // 2 AM UTC
	}

	return nil
}

// LoanInterestRate returns the monthly rate as a decimal. Validate has
// already checked the string parses.
func (c *AssociationConfig) LoanInterestRate() decimal.Decimal {
	return decimal.RequireFromString(c.LoanMonthlyInterestRate)
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
