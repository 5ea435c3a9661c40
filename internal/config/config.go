package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Environment string
	Port        string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker  string
	GroupID string
}

type UploadConfig struct {
	Dir       string
	MaxSizeMB int64
}

// envAliases lists every setting with the environment variables that can
// provide it, in priority order. Railway injects the MYSQL* names.
var envAliases = map[string][]string{
	"app.env":            {"APP_ENV", "NODE_ENV"},
	"app.port":           {"PORT"},
	"db.driver":          {"DB_DRIVER"},
	"db.host":            {"DB_HOST", "MYSQLHOST"},
	"db.port":            {"DB_PORT", "MYSQLPORT"},
	"db.user":            {"DB_USER", "MYSQLUSER"},
	"db.password":        {"DB_PASSWORD", "MYSQLPASSWORD"},
	"db.name":            {"DB_NAME", "MYSQLDATABASE"},
	"db.sslmode":         {"DB_SSLMODE"},
	"db.max_retries":     {"DB_MAX_RETRIES"},
	"jwt.secret":         {"JWT_SECRET"},
	"jwt.access_ttl":     {"JWT_ACCESS_TTL"},
	"jwt.refresh_ttl":    {"JWT_REFRESH_TTL"},
	"redis.addr":         {"REDIS_ADDR", "REDIS_URL"},
	"kafka.broker":       {"KAFKA_BROKER"},
	"kafka.group_id":     {"KAFKA_GROUP_ID"},
	"upload.dir":         {"UPLOAD_DIR"},
	"upload.max_size_mb": {"MAX_UPLOAD_MB"},
}

func defaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("db.driver", DriverMySQL)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.user", "root")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "metallurg")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_retries", 5)
	v.SetDefault("jwt.access_ttl", "24h")
	v.SetDefault("jwt.refresh_ttl", "168h")
	v.SetDefault("kafka.group_id", "go-metallurg-assignments")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size_mb", 20)
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	defaults(v)
	for key, envs := range envAliases {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("db.driver")))
	if driver != DriverMySQL && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	port := v.GetString("db.port")
	if port == "" {
		port = "3306"
		if driver == DriverPostgres {
			port = "5432"
		}
	}

	cfg := &Config{
		App: AppConfig{
			Environment: v.GetString("app.env"),
			Port:        v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:     driver,
			Host:       v.GetString("db.host"),
			Port:       port,
			User:       v.GetString("db.user"),
			Password:   v.GetString("db.password"),
			Name:       v.GetString("db.name"),
			SSLMode:    v.GetString("db.sslmode"),
			MaxRetries: v.GetInt("db.max_retries"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			AccessTTL:  v.GetDuration("jwt.access_ttl"),
			RefreshTTL: v.GetDuration("jwt.refresh_ttl"),
		},
		Redis: RedisConfig{
			Addr: v.GetString("redis.addr"),
		},
		Kafka: KafkaConfig{
			Broker:  v.GetString("kafka.broker"),
			GroupID: v.GetString("kafka.group_id"),
		},
		Upload: UploadConfig{
			Dir:       v.GetString("upload.dir"),
			MaxSizeMB: v.GetInt64("upload.max_size_mb"),
		},
	}

	if cfg.JWT.Secret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWT.Secret = "dev-secret-change-me"
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// DSN returns the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
		)
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}
