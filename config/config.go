package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/zsmartex/rebate/types"
)

var Env *Environment

type Environment struct {
	AppEnv    string
	LogLevel  string
	Port      int
	AppOrigin string

	StoreDriver types.StoreDriver
	FixturePath string

	JWTSecret  string
	SessionTTL time.Duration
	AdminUIDs  []string

	ReportTimezone string
	StatsCacheTTL  time.Duration

	Database DatabaseConfig
	Redis    RedisConfig
	InfluxDB InfluxDBConfig
	Nats     NatsConfig
}

type DatabaseConfig struct {
	Host    string
	Port    int
	User    string
	Pass    string
	Name    string
	SSLMode string
}

type RedisConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type InfluxDBConfig struct {
	URL      string
	Database string
}

type NatsConfig struct {
	URL  string
	User string
	Pass string
}

// InitializeConfig loads the environment and connects every optional
// backend whose host is configured.
func InitializeConfig() error {
	_ = godotenv.Load()

	env, err := LoadEnvironment()
	if err != nil {
		return err
	}
	Env = env

	NewLoggerService()

	if env.StoreDriver == types.StoreDriverPostgres {
		if err := ConnectDatabase(); err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
	}
	if len(env.Redis.Host) > 0 {
		if err := NewCacheService(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
	}
	if len(env.InfluxDB.URL) > 0 {
		if err := NewInfluxDB(); err != nil {
			return fmt.Errorf("connect influxdb: %w", err)
		}
	}
	if len(env.Nats.URL) > 0 {
		if err := ConnectNats(); err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
	}

	return nil
}

func LoadEnvironment() (*Environment, error) {
	env := &Environment{
		AppEnv:    getEnvDefault("APP_ENV", "development"),
		LogLevel:  getEnvDefault("LOG_LEVEL", "info"),
		Port:      getEnvIntDefault("APP_PORT", 3000),
		AppOrigin: getEnvDefault("APP_ORIGIN", "http://localhost:3000"),

		StoreDriver: getEnvDefault("STORE_DRIVER", types.StoreDriverMemory),
		FixturePath: os.Getenv("FIXTURE_PATH"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		SessionTTL: getEnvDurationDefault("SESSION_TTL", 24*time.Hour),
		AdminUIDs:  getEnvList("ADMIN_UIDS"),

		ReportTimezone: getEnvDefault("REPORT_TIMEZONE", "Asia/Shanghai"),
		StatsCacheTTL:  getEnvDurationDefault("STATS_CACHE_TTL", time.Minute),

		Database: DatabaseConfig{
			Host:    os.Getenv("DATABASE_HOST"),
			Port:    getEnvIntDefault("DATABASE_PORT", 5432),
			User:    os.Getenv("DATABASE_USER"),
			Pass:    os.Getenv("DATABASE_PASS"),
			Name:    getEnvDefault("DATABASE_NAME", "rebate"),
			SSLMode: getEnvDefault("DATABASE_SSLMODE", "require"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnvIntDefault("REDIS_PORT", 6379),
			Username: os.Getenv("REDIS_USERNAME"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		InfluxDB: InfluxDBConfig{
			URL:      os.Getenv("INFLUXDB_URL"),
			Database: getEnvDefault("INFLUXDB_DATABASE", "rebate"),
		},
		Nats: NatsConfig{
			URL:  os.Getenv("NATS_URL"),
			User: os.Getenv("NATS_USER"),
			Pass: os.Getenv("NATS_PASS"),
		},
	}

	if len(env.JWTSecret) == 0 && !env.IsProduction() {
		env.JWTSecret = "rebate-development-secret"
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}

	return env, nil
}

func (e *Environment) Validate() error {
	if len(e.JWTSecret) == 0 {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if e.StoreDriver != types.StoreDriverMemory && e.StoreDriver != types.StoreDriverPostgres {
		return fmt.Errorf("unsupported STORE_DRIVER %q", e.StoreDriver)
	}
	if e.StoreDriver == types.StoreDriverPostgres && len(e.Database.Host) == 0 {
		return fmt.Errorf("DATABASE_HOST is required for the postgres store")
	}
	if e.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if _, err := time.LoadLocation(e.ReportTimezone); err != nil {
		return fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}

	return nil
}

func (e *Environment) IsProduction() bool {
	return e.AppEnv == "production"
}

// Location is the time zone report timestamps are rendered in.
func (e *Environment) Location() *time.Location {
	location, err := time.LoadLocation(e.ReportTimezone)
	if err != nil {
		return time.UTC
	}

	return location
}

func (e *Environment) ListenAddr() string {
	return ":" + strconv.Itoa(e.Port)
}

func getEnvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getEnvList(key string) []string {
	values := make([]string, 0)
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); len(v) > 0 {
			values = append(values, v)
		}
	}
	return values
}
