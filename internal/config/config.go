package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
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
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// RedisConfig holds Redis configuration (job locks and short-lived caches)
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// NodeConfig holds settlement node configuration
type NodeConfig struct {
	RPCURL         string        `mapstructure:"rpc_url"`
	AccountAddress string        `mapstructure:"account_address"`
	Secret         string        `mapstructure:"secret"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// DemandConfig holds demand-server client configuration
type DemandConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	PageLimit      int           `mapstructure:"page_limit"`
}

// LicenseConfig holds license-server client configuration
type LicenseConfig struct {
	URL            string        `mapstructure:"url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

// ExchangeConfig holds exchange-rate service configuration
type ExchangeConfig struct {
	URL            string        `mapstructure:"url"`
	Currency       string        `mapstructure:"currency"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
}

// FeeConfig holds the fee coefficients as decimal strings.
// Rates are kept textual in config and parsed once at startup so no float
// ever enters the split math.
type FeeConfig struct {
	LicenseRate   string `mapstructure:"license_rate"`
	OperatorRate  string `mapstructure:"operator_rate"`
	CommunityRate string `mapstructure:"community_rate"`
}

// Rates parses the configured fee coefficients
func (c *FeeConfig) Rates() (license, operator, community decimal.Decimal, err error) {
	if license, err = decimal.NewFromString(c.LicenseRate); err != nil {
		return license, operator, community, fmt.Errorf("invalid fee.license_rate %q: %w", c.LicenseRate, err)
	}
	if operator, err = decimal.NewFromString(c.OperatorRate); err != nil {
		return license, operator, community, fmt.Errorf("invalid fee.operator_rate %q: %w", c.OperatorRate, err)
	}
	if c.CommunityRate == "" {
		return license, operator, decimal.Zero, nil
	}
	if community, err = decimal.NewFromString(c.CommunityRate); err != nil {
		return license, operator, community, fmt.Errorf("invalid fee.community_rate %q: %w", c.CommunityRate, err)
	}
	return license, operator, community, nil
}

// MatchConfig holds payment-matching configuration
type MatchConfig struct {
	TryOutWindow time.Duration `mapstructure:"try_out_window"` // candidates younger than this stay candidates
}

// PayoutConfig holds payout batching configuration
type PayoutConfig struct {
	BatchLimit       int           `mapstructure:"batch_limit"`
	JoiningFeePeriod time.Duration `mapstructure:"joining_fee_period"`
	JoiningFeeDecay  string        `mapstructure:"joining_fee_decay"` // decimal coefficient per period
}

// ColdWalletConfig holds hot/cold wallet management configuration
type ColdWalletConfig struct {
	Address        string        `mapstructure:"address"`
	MaxHotBalance  int64         `mapstructure:"max_hot_balance"`  // largest free surplus kept on the hot wallet
	MinHotBalance  int64         `mapstructure:"min_hot_balance"`  // below this surplus the operator is notified
	MinTransfer    int64         `mapstructure:"min_transfer"`     // smallest excess worth a cold transfer
	NotifyInterval time.Duration `mapstructure:"notify_interval"`  // rate limit for shortfall notifications
}

// WithdrawalConfig holds auto-withdrawal configuration
type WithdrawalConfig struct {
	MinAmount int64 `mapstructure:"min_amount"` // clicks below which no withdrawal is dispatched
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// IngesterConfig holds configuration for the ingester binary
type IngesterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Node       NodeConfig     `mapstructure:"node"`
}

// MatcherConfig holds configuration for the matcher binary
type MatcherConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Node       NodeConfig     `mapstructure:"node"`
	Demand     DemandConfig   `mapstructure:"demand"`
	License    LicenseConfig  `mapstructure:"license"`
	Exchange   ExchangeConfig `mapstructure:"exchange"`
	Fee        FeeConfig      `mapstructure:"fee"`
	Match      MatchConfig    `mapstructure:"match"`
	Worker     WorkerConfig   `mapstructure:"worker"`
}

// DisburserConfig holds configuration for the disburser binary
type DisburserConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Node       NodeConfig     `mapstructure:"node"`
	Payout     PayoutConfig   `mapstructure:"payout"`
}

// WalletConfig holds configuration for the wallet binary
type WalletConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Node       NodeConfig       `mapstructure:"node"`
	Exchange   ExchangeConfig   `mapstructure:"exchange"`
	ColdWallet ColdWalletConfig `mapstructure:"cold_wallet"`
	Withdrawal WithdrawalConfig `mapstructure:"withdrawal"`
}

// OpsAPIConfig holds configuration for the ops API server
type OpsAPIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
}

// LoadIngesterConfig loads configuration for the ingester binary
func LoadIngesterConfig(configFile string, envPath string) (*IngesterConfig, error) {
	v := configureViper("ingester", configFile, envPath)

	setDatabaseDefaults(v)
	setRedisDefaults(v)
	setNATSDefaults(v, "ingester")
	setNodeDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config IngesterConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateNode(&config.Node); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadMatcherConfig loads configuration for the matcher binary
func LoadMatcherConfig(configFile string, envPath string) (*MatcherConfig, error) {
	v := configureViper("matcher", configFile, envPath)

	setDatabaseDefaults(v)
	setRedisDefaults(v)
	setNATSDefaults(v, "matcher")
	setNodeDefaults(v)
	v.SetDefault("demand.request_timeout", "30s")
	v.SetDefault("demand.page_limit", 5000)
	v.SetDefault("license.request_timeout", "10s")
	v.SetDefault("license.cache_ttl", "10m")
	v.SetDefault("exchange.currency", "USD")
	v.SetDefault("exchange.request_timeout", "10s")
	v.SetDefault("exchange.cache_ttl", "1h")
	v.SetDefault("fee.license_rate", "0.01")
	v.SetDefault("fee.operator_rate", "0.01")
	v.SetDefault("match.try_out_window", "24h")
	v.SetDefault("worker.pool_size", 10)
	v.SetDefault("worker.queue_size", 1024)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config MatcherConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateNode(&config.Node); err != nil {
		return nil, err
	}
	if _, _, _, err := config.Fee.Rates(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadDisburserConfig loads configuration for the disburser binary
func LoadDisburserConfig(configFile string, envPath string) (*DisburserConfig, error) {
	v := configureViper("disburser", configFile, envPath)

	setDatabaseDefaults(v)
	setRedisDefaults(v)
	setNATSDefaults(v, "disburser")
	setNodeDefaults(v)
	v.SetDefault("payout.batch_limit", 1000)
	v.SetDefault("payout.joining_fee_period", "720h") // 30 days
	v.SetDefault("payout.joining_fee_decay", "0.5")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config DisburserConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateNode(&config.Node); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadWalletConfig loads configuration for the wallet binary
func LoadWalletConfig(configFile string, envPath string) (*WalletConfig, error) {
	v := configureViper("wallet", configFile, envPath)

	setDatabaseDefaults(v)
	setRedisDefaults(v)
	setNATSDefaults(v, "wallet")
	setNodeDefaults(v)
	v.SetDefault("exchange.currency", "USD")
	v.SetDefault("exchange.request_timeout", "10s")
	v.SetDefault("exchange.cache_ttl", "1h")
	v.SetDefault("cold_wallet.notify_interval", "6h")
	v.SetDefault("withdrawal.min_amount", 1)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config WalletConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateNode(&config.Node); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadOpsAPIConfig loads configuration for the ops API server
func LoadOpsAPIConfig(configFile string, envPath string) (*OpsAPIConfig, error) {
	v := configureViper("opsapi", configFile, envPath)

	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var config OpsAPIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setRedisDefaults(v *viper.Viper) {
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
}

func setNATSDefaults(v *viper.Viper, service string) {
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream_name", "SETTLEMENT")
	v.SetDefault("nats.consumer_name", service)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "settlement-"+service)
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 3)
}

func setNodeDefaults(v *viper.Viper) {
	v.SetDefault("node.request_timeout", "30s")
}

func validateNode(c *NodeConfig) error {
	if c.RPCURL == "" {
		return errors.New("node.rpc_url is required")
	}
	if c.AccountAddress == "" {
		return errors.New("node.account_address is required")
	}
	return nil
}

// readInConfig reads the config file, tolerating its absence so env-only
// deployments keep working
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/matcher/, cmd/opsapi/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("SETTLEMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
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
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Node
		"node.rpc_url",
		"node.account_address",
		"node.secret",
		"node.request_timeout",
		// Demand servers
		"demand.request_timeout",
		"demand.page_limit",
		// License server
		"license.url",
		"license.request_timeout",
		"license.cache_ttl",
		// Exchange rates
		"exchange.url",
		"exchange.currency",
		"exchange.request_timeout",
		"exchange.cache_ttl",
		// Fees
		"fee.license_rate",
		"fee.operator_rate",
		"fee.community_rate",
		// Matching
		"match.try_out_window",
		// Payouts
		"payout.batch_limit",
		"payout.joining_fee_period",
		"payout.joining_fee_decay",
		// Wallet management
		"cold_wallet.address",
		"cold_wallet.max_hot_balance",
		"cold_wallet.min_hot_balance",
		"cold_wallet.min_transfer",
		"cold_wallet.notify_interval",
		"withdrawal.min_amount",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
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
