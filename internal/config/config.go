package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/chainpass/ticketing/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration. An empty URL disables publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	NotificationTaskQueue              string  `mapstructure:"notification_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// AllowedOrigins restricts CORS, empty allows every origin
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds organizer authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RedisConfig holds Redis configuration. An empty address disables rate limiting.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig bounds public endpoints per client IP
type RateLimitConfig struct {
	RequestsPerMinute     int `mapstructure:"requests_per_minute"`
	Burst                 int `mapstructure:"burst"`
	ScanRequestsPerMinute int `mapstructure:"scan_requests_per_minute"`
}

// LedgerConfig holds Algorand node, indexer and organizer account configuration
type LedgerConfig struct {
	AlgodURL           string          `mapstructure:"algod_url"`
	AlgodToken         string          `mapstructure:"algod_token"`
	IndexerURL         string          `mapstructure:"indexer_url"`
	IndexerToken       string          `mapstructure:"indexer_token"`
	EventsAppID        uint64          `mapstructure:"events_app_id"`
	OrganizerMnemonic  string          `mapstructure:"organizer_mnemonic"`
	ConfirmationRounds uint64          `mapstructure:"confirmation_rounds"`
	SubmissionDelay    time.Duration   `mapstructure:"submission_delay"`
	MaxRetryElapsed    time.Duration   `mapstructure:"max_retry_elapsed"`
	Throttle           ThrottleConfig  `mapstructure:"throttle"`
	Directory          DirectoryConfig `mapstructure:"directory"`
}

// DirectoryConfig controls how long event registry reads are reused
type DirectoryConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	StaleWindow time.Duration `mapstructure:"stale_window"`
}

// ThrottleConfig bounds outbound request rates to the algod node and the indexer.
// Zero rates leave that endpoint unpaced.
type ThrottleConfig struct {
	AlgodRequestsPerSecond   int           `mapstructure:"algod_requests_per_second"`
	IndexerRequestsPerSecond int           `mapstructure:"indexer_requests_per_second"`
	MaxWait                  time.Duration `mapstructure:"max_wait"`
}

// SigningConfig holds ticket signing keys.
// PrivateKey is only read by server processes; PublicKeys may be shared with verifiers.
type SigningConfig struct {
	PrivateKey string   `mapstructure:"private_key"`
	PublicKeys []string `mapstructure:"public_keys"`
}

// CheckinConfig holds check-in session configuration
type CheckinConfig struct {
	RegistrantCacheTTL time.Duration         `mapstructure:"registrant_cache_ttl"`
	ScanCooldown       time.Duration         `mapstructure:"scan_cooldown"`
	SessionIdleTimeout time.Duration         `mapstructure:"session_idle_timeout"`
	RedemptionMode     domain.RedemptionMode `mapstructure:"redemption_mode"`
}

// RegistrationConfig holds registration configuration
type RegistrationConfig struct {
	RequireOnchainBox bool `mapstructure:"require_onchain_box"`
}

// NotificationConfig holds ticket email configuration
type NotificationConfig struct {
	// Dispatcher is either "temporal" or "inline"
	Dispatcher     string        `mapstructure:"dispatcher"`
	ResendAPIURL   string        `mapstructure:"resend_api_url"`
	ResendAPIKey   string        `mapstructure:"resend_api_key"`
	FromAddress    string        `mapstructure:"from_address"`
	AudienceID     string        `mapstructure:"audience_id"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Worker         WorkerConfig  `mapstructure:"worker"`
}

// URIConfig holds URI resolver configuration
type URIConfig struct {
	IPFSGateway string `mapstructure:"ipfs_gateway"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Temporal     TemporalConfig     `mapstructure:"temporal"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Redis        RedisConfig        `mapstructure:"redis"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	NATS         NATSConfig         `mapstructure:"nats"`
	Ledger       LedgerConfig       `mapstructure:"ledger"`
	Signing      SigningConfig      `mapstructure:"signing"`
	Checkin      CheckinConfig      `mapstructure:"checkin"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Notification NotificationConfig `mapstructure:"notification"`
	URI          URIConfig          `mapstructure:"uri"`
}

// NotificationWorkerConfig holds configuration for worker-notification
type NotificationWorkerConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Temporal     TemporalConfig     `mapstructure:"temporal"`
	Signing      SigningConfig      `mapstructure:"signing"`
	Notification NotificationConfig `mapstructure:"notification"`
}

// OwnershipSweeperConfig holds configuration for the ownership reconciliation sweeper
type OwnershipSweeperConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	Worker    WorkerConfig  `mapstructure:"worker"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig       `mapstructure:",squash"`
	Database         DatabaseConfig         `mapstructure:"database"`
	Temporal         TemporalConfig         `mapstructure:"temporal"`
	Ledger           LedgerConfig           `mapstructure:"ledger"`
	NATS             NATSConfig             `mapstructure:"nats"`
	Redis            RedisConfig            `mapstructure:"redis"`
	OwnershipSweeper OwnershipSweeperConfig `mapstructure:"ownership_sweeper"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	setNATSDefaults(v)
	setLedgerDefaults(v)
	setNotificationDefaults(v)
	v.SetDefault("rate_limit.requests_per_minute", 120)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.scan_requests_per_minute", 600)
	v.SetDefault("checkin.registrant_cache_ttl", "5m")
	v.SetDefault("checkin.scan_cooldown", "2s")
	v.SetDefault("checkin.session_idle_timeout", "12h")
	v.SetDefault("checkin.redemption_mode", string(domain.RedemptionModeFlag))
	v.SetDefault("registration.require_onchain_box", false)
	v.SetDefault("uri.ipfs_gateway", domain.DEFAULT_IPFS_GATEWAY)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !domain.IsValidRedemptionMode(cfg.Checkin.RedemptionMode) {
		return nil, fmt.Errorf("invalid checkin.redemption_mode: %q", cfg.Checkin.RedemptionMode)
	}
	if cfg.Notification.Dispatcher != "temporal" && cfg.Notification.Dispatcher != "inline" {
		return nil, fmt.Errorf("invalid notification.dispatcher: %q", cfg.Notification.Dispatcher)
	}

	return &cfg, nil
}

// LoadNotificationWorkerConfig loads configuration for worker-notification
func LoadNotificationWorkerConfig(configFile string, envPath string) (*NotificationWorkerConfig, error) {
	v := configureViper("worker-notification", configFile, envPath)

	setDatabaseDefaults(v)
	setTemporalDefaults(v)
	setNotificationDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg NotificationWorkerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Signing.PrivateKey == "" {
		return nil, errors.New("signing.private_key is required")
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	setDatabaseDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	setTemporalDefaults(v)
	setLedgerDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("ownership_sweeper.interval", "10m")
	v.SetDefault("ownership_sweeper.batch_size", 200)
	v.SetDefault("ownership_sweeper.worker.pool_size", 8)
	v.SetDefault("ownership_sweeper.worker.queue_size", 256)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.notification_task_queue", "ticket-notification")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 20)
	v.SetDefault("temporal.worker_activities_per_second", 10)
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.stream_name", "TICKETING_EVENTS")
	v.SetDefault("nats.subject_prefix", "ticketing")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "chainpass")
}

func setLedgerDefaults(v *viper.Viper) {
	v.SetDefault("ledger.algod_url", domain.DEFAULT_ALGOD_URL)
	v.SetDefault("ledger.indexer_url", domain.DEFAULT_INDEXER_URL)
	v.SetDefault("ledger.confirmation_rounds", domain.DEFAULT_CONFIRMATION_ROUNDS)
	v.SetDefault("ledger.submission_delay", "20ms")
	v.SetDefault("ledger.max_retry_elapsed", "20s")
	v.SetDefault("ledger.throttle.algod_requests_per_second", 40)
	v.SetDefault("ledger.throttle.indexer_requests_per_second", 40)
	v.SetDefault("ledger.throttle.max_wait", "30s")
	v.SetDefault("ledger.directory.ttl", "30s")
	v.SetDefault("ledger.directory.stale_window", "5m")
}

func setNotificationDefaults(v *viper.Viper) {
	v.SetDefault("notification.dispatcher", "temporal")
	v.SetDefault("notification.resend_api_url", "https://api.resend.com")
	v.SetDefault("notification.from_address", "Tickets <tickets@chainpass.app>")
	v.SetDefault("notification.request_timeout", "15s")
	v.SetDefault("notification.worker.pool_size", 4)
	v.SetDefault("notification.worker.queue_size", 256)
}

// readConfig reads the config file, tolerating its absence so env-only deployments work
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("CHAINPASS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Viper only maps env vars onto struct fields for keys it already knows about.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.notification_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		"rate_limit.requests_per_minute",
		"rate_limit.burst",
		"rate_limit.scan_requests_per_minute",
		// Ledger
		"ledger.algod_url",
		"ledger.algod_token",
		"ledger.indexer_url",
		"ledger.indexer_token",
		"ledger.events_app_id",
		"ledger.organizer_mnemonic",
		"ledger.confirmation_rounds",
		"ledger.submission_delay",
		"ledger.max_retry_elapsed",
		"ledger.throttle.algod_requests_per_second",
		"ledger.throttle.indexer_requests_per_second",
		"ledger.throttle.max_wait",
		"ledger.directory.ttl",
		"ledger.directory.stale_window",
		// Signing
		"signing.private_key",
		"signing.public_keys",
		// Check-in
		"checkin.registrant_cache_ttl",
		"checkin.scan_cooldown",
		"checkin.session_idle_timeout",
		"checkin.redemption_mode",
		// Registration
		"registration.require_onchain_box",
		// Notification
		"notification.dispatcher",
		"notification.resend_api_url",
		"notification.resend_api_key",
		"notification.from_address",
		"notification.audience_id",
		"notification.request_timeout",
		"notification.worker.pool_size",
		"notification.worker.queue_size",
		// URI
		"uri.ipfs_gateway",
		// Ownership sweeper
		"ownership_sweeper.interval",
		"ownership_sweeper.batch_size",
		"ownership_sweeper.worker.pool_size",
		"ownership_sweeper.worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "go.mod")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
