package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Report   ReportConfig
}

type ServerConfig struct {
	AppEnv          string
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type DatabaseConfig struct {
	Driver     string
	SQLitePath string

	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // seconds
	ConnMaxIdleTime int // seconds
}

// RedisConfig enables the cross-process purchase lock when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	LockTTL  time.Duration
}

// KafkaConfig enables the purchase listener and event publishing when Brokers is non-empty.
type KafkaConfig struct {
	Brokers     []string
	Topic       string
	EventsTopic string
	GroupID     string
}

type ReportConfig struct {
	LowStockThreshold int
	SalesWindowDays   int
}

var defaults = map[string]interface{}{
	"app_env":            "development",
	"http_port":          "8080",
	"http_read_timeout":  "10s",
	"http_write_timeout": "30s",
	"shutdown_timeout":   "10s",

	"logger_level":              "info",
	"logger_encoding":           "json",
	"logger_disable_caller":     false,
	"logger_disable_stacktrace": true,

	"db_driver":                   "sqlite",
	"sqlite_path":                 "inventory.db",
	"postgres_host":               "localhost",
	"postgres_port":               "5432",
	"postgres_user":               "inventory",
	"postgres_password":           "",
	"postgres_db":                 "inventory",
	"postgres_sslmode":            "disable",
	"postgres_max_open_conns":     10,
	"postgres_max_idle_conns":     5,
	"postgres_conn_max_lifetime":  300,
	"postgres_conn_max_idle_time": 60,

	"redis_addr":     "",
	"redis_password": "",
	"redis_db":       0,
	"lock_ttl":       "5s",

	"kafka_brokers":               "",
	"kafka_topic_purchases":       "inventory.purchase-requests",
	"kafka_topic_purchase_events": "inventory.purchase-events",
	"kafka_group_purchases":       "inventory",

	"report_low_stock_threshold": 5,
	"report_sales_window_days":   30,
}

// Load reads configuration from .env and the environment, overlaid on an
// optional YAML file. An empty path looks for ./config.yaml and tolerates its absence.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // Load .env file if it exists

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			AppEnv:          v.GetString("app_env"),
			HTTPPort:        v.GetString("http_port"),
			ReadTimeout:     v.GetDuration("http_read_timeout"),
			WriteTimeout:    v.GetDuration("http_write_timeout"),
			ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		},
		Logger: LoggerConfig{
			Level:             v.GetString("logger_level"),
			Encoding:          v.GetString("logger_encoding"),
			DisableCaller:     v.GetBool("logger_disable_caller"),
			DisableStacktrace: v.GetBool("logger_disable_stacktrace"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("db_driver")),
			SQLitePath:      v.GetString("sqlite_path"),
			Host:            v.GetString("postgres_host"),
			Port:            v.GetString("postgres_port"),
			User:            v.GetString("postgres_user"),
			Password:        v.GetString("postgres_password"),
			DBName:          v.GetString("postgres_db"),
			SSLMode:         v.GetString("postgres_sslmode"),
			MaxOpenConns:    v.GetInt("postgres_max_open_conns"),
			MaxIdleConns:    v.GetInt("postgres_max_idle_conns"),
			ConnMaxLifetime: v.GetInt("postgres_conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("postgres_conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
			DB:       v.GetInt("redis_db"),
			LockTTL:  v.GetDuration("lock_ttl"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(v.GetString("kafka_brokers")),
			Topic:       v.GetString("kafka_topic_purchases"),
			EventsTopic: v.GetString("kafka_topic_purchase_events"),
			GroupID:     v.GetString("kafka_group_purchases"),
		},
		Report: ReportConfig{
			LowStockThreshold: v.GetInt("report_low_stock_threshold"),
			SalesWindowDays:   v.GetInt("report_sales_window_days"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return errors.New("config: SQLITE_PATH must be set for the sqlite driver")
		}
	case "postgres":
		if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
			return errors.New("config: POSTGRES_HOST, POSTGRES_USER and POSTGRES_DB must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Report.LowStockThreshold < 0 {
		return errors.New("config: REPORT_LOW_STOCK_THRESHOLD must not be negative")
	}
	if c.Report.SalesWindowDays <= 0 {
		return errors.New("config: REPORT_SALES_WINDOW_DAYS must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
