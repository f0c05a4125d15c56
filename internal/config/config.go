package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level YAML configuration.
type Config struct {
	Connection Connection `yaml:"connection"`
	Report     Report     `yaml:"report"`
	History    History    `yaml:"history"`
}

// Connection holds database connection parameters.
type Connection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// Report holds engine settings.
type Report struct {
	Schemas              []string            `yaml:"schemas"`
	ExcludeTablePrefixes []string            `yaml:"exclude_table_prefixes"`
	LookupTables         map[string][]string `yaml:"lookup_tables"`
	QueryTimeoutMS       int                 `yaml:"query_timeout_ms"`
	MaxConcurrentQueries int                 `yaml:"max_concurrent_queries"`
}

// History configures the local run log.
type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DSN builds a PostgreSQL connection string.
func (c *Connection) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode,
	)
}

// PoolSizeOrDefault returns the configured pool size, or 5.
func (c *Connection) PoolSizeOrDefault() int32 {
	if c.PoolSize > 0 {
		return int32(c.PoolSize)
	}
	return 5
}

// QueryTimeout returns the configured per-query deadline.
func (r *Report) QueryTimeout() time.Duration {
	return time.Duration(r.QueryTimeoutMS) * time.Millisecond
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyEnv fills in empty Connection fields from environment variables.
// YAML values take precedence; env vars are used only as fallback.
func (c *Config) applyEnv() {
	conn := &c.Connection
	if conn.Host == "" {
		conn.Host = envOr("PGHOST", "POSTGRES_HOST", "")
	}
	if conn.Port == 0 {
		if s := envOr("PGPORT", "POSTGRES_PORT", ""); s != "" {
			if p, err := strconv.Atoi(s); err == nil {
				conn.Port = p
			}
		}
	}
	if conn.Database == "" {
		conn.Database = envOr("PGDATABASE", "POSTGRES_DB", "")
	}
	if conn.User == "" {
		conn.User = envOr("PGUSER", "POSTGRES_USER", "")
	}
	if conn.Password == "" {
		conn.Password = envOr("PGPASSWORD", "POSTGRES_PASSWORD", "")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = envOr("PGSSLMODE", "", "")
	}
}

// envOr returns the first non-empty value from the given env var names, or fallback.
func envOr(names ...string) string {
	for _, n := range names {
		if n == "" {
			continue
		}
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// validate checks required connection fields and applies defaults.
func (c *Config) validate() error {
	if c.Connection.Host == "" {
		return fmt.Errorf("connection.host is required")
	}
	if c.Connection.Port == 0 {
		c.Connection.Port = 5432
	}
	if c.Connection.Database == "" {
		return fmt.Errorf("connection.database is required")
	}
	if c.Connection.User == "" {
		return fmt.Errorf("connection.user is required")
	}
	if c.Connection.SSLMode == "" {
		c.Connection.SSLMode = "disable"
	}
	if len(c.Report.Schemas) == 0 {
		c.Report.Schemas = []string{"public"}
	}
	if c.Report.QueryTimeoutMS == 0 {
		c.Report.QueryTimeoutMS = 30000
	}
	if c.Report.MaxConcurrentQueries == 0 {
		c.Report.MaxConcurrentQueries = 4
	}
	if c.History.Enabled && c.History.Path == "" {
		c.History.Path = defaultHistoryPath()
	}
	return nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "history.db"
	}
	return filepath.Join(home, ".db-adhoc-report", "history.db")
}
