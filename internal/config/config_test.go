package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIngesterConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *IngesterConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
redis:
  addr: "localhost:6380"
  db: 2
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
  max_reconnects: 5
  reconnect_wait: "5s"
node:
  rpc_url: "http://localhost:6048"
  account_address: "0001-00000000-9B6F"
  secret: "deadbeef"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *IngesterConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
				assert.Equal(t, 2, cfg.Redis.DB)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "http://localhost:6048", cfg.Node.RPCURL)
				assert.Equal(t, "0001-00000000-9B6F", cfg.Node.AccountAddress)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
node:
  rpc_url: "http://localhost:6048"
  account_address: "0001-00000000-9B6F"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *IngesterConfig) {
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, "SETTLEMENT", cfg.NATS.StreamName)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, "2s", cfg.NATS.ReconnectWait.String())
				assert.Equal(t, 30*time.Second, cfg.Node.RequestTimeout)
			},
		},
		{
			name: "missing node address",
			configFile: `
database:
  host: localhost
node:
  rpc_url: "http://localhost:6048"
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadIngesterConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadMatcherConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *MatcherConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: false
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
node:
  rpc_url: "http://localhost:6048"
  account_address: "0001-00000000-9B6F"
license:
  url: "https://license.example.com"
exchange:
  url: "https://rates.example.com"
  currency: "EUR"
fee:
  license_rate: "0.01"
  operator_rate: "0.05"
match:
  try_out_window: "12h"
worker:
  pool_size: 4
  queue_size: 128
`,
			expectError: false,
			validate: func(t *testing.T, cfg *MatcherConfig) {
				assert.Equal(t, "https://license.example.com", cfg.License.URL)
				assert.Equal(t, "EUR", cfg.Exchange.Currency)
				assert.Equal(t, 12*time.Hour, cfg.Match.TryOutWindow)
				assert.Equal(t, 4, cfg.Worker.WorkerPoolSize)
				assert.Equal(t, 128, cfg.Worker.WorkerQueueSize)

				license, operator, community, err := cfg.Fee.Rates()
				require.NoError(t, err)
				assert.True(t, license.Equal(decimal.RequireFromString("0.01")))
				assert.True(t, operator.Equal(decimal.RequireFromString("0.05")))
				assert.True(t, community.IsZero())
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
node:
  rpc_url: "http://localhost:6048"
  account_address: "0001-00000000-9B6F"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *MatcherConfig) {
				assert.Equal(t, 5000, cfg.Demand.PageLimit)
				assert.Equal(t, 24*time.Hour, cfg.Match.TryOutWindow)
				assert.Equal(t, "USD", cfg.Exchange.Currency)
				assert.Equal(t, time.Hour, cfg.Exchange.CacheTTL)
				assert.Equal(t, 10, cfg.Worker.WorkerPoolSize)
			},
		},
		{
			name: "invalid fee rate",
			configFile: `
database:
  host: localhost
node:
  rpc_url: "http://localhost:6048"
  account_address: "0001-00000000-9B6F"
fee:
  license_rate: "one percent"
  operator_rate: "0.05"
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadMatcherConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadWalletConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configFile, []byte(`
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
node:
  rpc_url: "http://localhost:6048"
  account_address: "0001-00000000-9B6F"
cold_wallet:
  address: "0001-00000001-8B4E"
  max_hot_balance: 500000000000
  min_hot_balance: 10000000000
  min_transfer: 1000000000
`), 0600)
	require.NoError(t, err)

	cfg, err := LoadWalletConfig(configFile, "")
	require.NoError(t, err)

	assert.Equal(t, "0001-00000001-8B4E", cfg.ColdWallet.Address)
	assert.Equal(t, int64(500000000000), cfg.ColdWallet.MaxHotBalance)
	assert.Equal(t, int64(10000000000), cfg.ColdWallet.MinHotBalance)
	assert.Equal(t, int64(1000000000), cfg.ColdWallet.MinTransfer)
	assert.Equal(t, 6*time.Hour, cfg.ColdWallet.NotifyInterval) // default
	assert.Equal(t, int64(1), cfg.Withdrawal.MinAmount)         // default
}

func TestLoadOpsAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *OpsAPIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 20
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *OpsAPIConfig) {
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 20, cfg.Server.ReadTimeout)
				assert.Equal(t, 10, cfg.Server.WriteTimeout) // default
				assert.Equal(t, 120, cfg.Server.IdleTimeout) // default
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
`,
			expectError: false,
			validate: func(t *testing.T, cfg *OpsAPIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadOpsAPIConfig(configFile, "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestFeeConfigRates(t *testing.T) {
	tests := []struct {
		name        string
		config      FeeConfig
		expectError bool
		license     string
		operator    string
		community   string
	}{
		{
			name:      "license and operator only",
			config:    FeeConfig{LicenseRate: "0.01", OperatorRate: "0.05"},
			license:   "0.01",
			operator:  "0.05",
			community: "0",
		},
		{
			name:      "with community rate",
			config:    FeeConfig{LicenseRate: "0.01", OperatorRate: "0.05", CommunityRate: "0.02"},
			license:   "0.01",
			operator:  "0.05",
			community: "0.02",
		},
		{
			name:        "invalid license rate",
			config:      FeeConfig{LicenseRate: "abc", OperatorRate: "0.05"},
			expectError: true,
		},
		{
			name:        "invalid community rate",
			config:      FeeConfig{LicenseRate: "0.01", OperatorRate: "0.05", CommunityRate: "x"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			license, operator, community, err := tt.config.Rates()
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, license.Equal(decimal.RequireFromString(tt.license)))
			assert.True(t, operator.Equal(decimal.RequireFromString(tt.operator)))
			assert.True(t, community.Equal(decimal.RequireFromString(tt.community)))
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	config := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		config.DSN())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	err := os.MkdirAll(envDir, 0750)
	require.NoError(t, err)

	// godotenv.Overload sets real environment variables, viper's AutomaticEnv
	// picks them up with the SETTLEMENT_ prefix
	envFile := filepath.Join(envDir, ".env")
	envContent := `SETTLEMENT_DEBUG=true
SETTLEMENT_DATABASE_HOST=env-host
SETTLEMENT_DATABASE_PORT=3306
SETTLEMENT_DATABASE_USER=env-user
SETTLEMENT_DATABASE_PASSWORD=env-pass
SETTLEMENT_DATABASE_DBNAME=env-db
SETTLEMENT_DATABASE_SSLMODE=require
`
	err = os.WriteFile(envFile, []byte(envContent), 0600)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, "config.yaml")
	configFile := `
debug: false
database:
  host: file-host
  port: 5432
  user: file-user
  password: file-pass
  dbname: file-db
  sslmode: disable
`
	err = os.WriteFile(configPath, []byte(configFile), 0600)
	require.NoError(t, err)

	cfg, err := LoadOpsAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Environment variables from the .env file override config file values
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "env-user", cfg.Database.User)
	assert.Equal(t, "env-pass", cfg.Database.Password)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, "require", cfg.Database.SSLMode)
}
