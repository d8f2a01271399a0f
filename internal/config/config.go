// Package config loads the configuration of the sqlqb command line tool
// from a configuration file, SQLQB_* environment variables and defaults.
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/ido50/sqlqb"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding configuration
// keys, e.g. SQLQB_DATABASE_DSN for "database.dsn"
const EnvPrefix = "SQLQB"

// Drivers supported by the command line tool
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Config is the complete configuration of the command line tool
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Logging  LoggingConfig  `mapstructure:"log"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	// Driver is the database driver name (mysql, sqlite3)
	Driver string `mapstructure:"driver"`

	// DSN is the database connection string. For MySQL, it is built from
	// the mysql section when empty.
	DSN string `mapstructure:"dsn"`

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int `mapstructure:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int `mapstructure:"max_idle_conns"`

	// ConnMaxLifetime is the maximum amount of time a connection may be reused
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	if c.Driver == "" {
		return fmt.Errorf("database driver cannot be empty")
	}

	if c.DSN == "" {
		return fmt.Errorf("database DSN cannot be empty")
	}

	switch c.Driver {
	case DriverMySQL:
		if _, err := mysql.ParseDSN(c.DSN); err != nil {
			return fmt.Errorf("invalid MySQL DSN: %w", err)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}

	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		return fmt.Errorf("connection pool sizes cannot be negative")
	}

	return nil
}

// MySQLConfig holds the parts of a MySQL DSN
type MySQLConfig struct {
	User     string            `mapstructure:"user"`
	Password string            `mapstructure:"password"`
	Net      string            `mapstructure:"net"`
	Addr     string            `mapstructure:"addr"`
	DBName   string            `mapstructure:"dbname"`
	Params   map[string]string `mapstructure:"params"`
}

// DSN formats the configuration as a MySQL DSN
func (c *MySQLConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = c.Net
	cfg.Addr = c.Addr
	cfg.DBName = c.DBName
	cfg.ParseTime = true

	if len(c.Params) > 0 {
		cfg.Params = make(map[string]string, len(c.Params))
		for key, value := range c.Params {
			cfg.Params[key] = value
		}
	}

	return cfg.FormatDSN()
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	// Level is the minimum severity level to log (trace, debug, info,
	// warn, error)
	Level string `mapstructure:"level"`

	// Format is the log format (text, json)
	Format string `mapstructure:"format"`

	// Output is the log output destination (stdout, stderr)
	Output string `mapstructure:"output"`
}

// Validate validates the logging configuration
func (c *LoggingConfig) Validate() error {
	if _, err := logrus.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown log level %q: %w", c.Level, err)
	}

	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}

	switch c.Output {
	case "stdout", "stderr":
	default:
		return fmt.Errorf("unknown log output %q", c.Output)
	}

	return nil
}

// Logger creates the logger described by the configuration. stdout and
// stderr are the writers used for the "stdout" and "stderr" outputs.
func (c *LoggingConfig) Logger(stdout, stderr io.Writer) (*logrus.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	level, _ := logrus.ParseLevel(c.Level)

	logger := logrus.New()
	logger.SetLevel(level)

	if c.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if c.Output == "stdout" {
		logger.SetOutput(stdout)
	} else {
		logger.SetOutput(stderr)
	}

	return logger, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}

	return c.Logging.Validate()
}

// Connect opens the configured database, verifying the connection
func (c *Config) Connect(ctx context.Context, logger logrus.FieldLogger) (*sqlqb.DB, error) {
	db, err := sqlqb.Open(ctx, c.Database.Driver, c.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed connecting to %s database: %w", c.Database.Driver, err)
	}

	db.SetMaxOpenConns(c.Database.MaxOpenConns)
	db.SetMaxIdleConns(c.Database.MaxIdleConns)
	db.SetConnMaxLifetime(c.Database.ConnMaxLifetime)
	db.Logger = logger

	return db, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("mysql.user", "root")
	v.SetDefault("mysql.password", "")
	v.SetDefault("mysql.net", "tcp")
	v.SetDefault("mysql.addr", "127.0.0.1:3306")
	v.SetDefault("mysql.dbname", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stderr")
}

// Load reads the configuration. path is the configuration file to read
// (YAML, JSON or TOML, by extension), and may be empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed reading config file: %w", err)
		}

		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed parsing config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed decoding configuration: %w", err)
	}

	if cfg.Database.DSN == "" && cfg.Database.Driver == DriverMySQL {
		cfg.Database.DSN = cfg.MySQL.DSN()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
