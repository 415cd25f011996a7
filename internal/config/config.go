package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Tax      TaxConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port        string
	Mode        string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection URL.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type AuthConfig struct {
	JWTSecret string
}

type CacheConfig struct {
	Enabled bool
	Type    string // inmemory or redis
	TTL     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TaxConfig tunes the profile mutation path.
type TaxConfig struct {
	MutationMaxRetries uint64
	MutationRetryWait  time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load reads configs/.env when present and then the process environment.
// Environment variables use the upper-cased dotted key, e.g. DB_HOST for db.host.
func Load() (*Configuration, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Configuration{
		Server: ServerConfig{
			Port:        v.GetString("port"),
			Mode:        v.GetString("gin.mode"),
			CORSOrigins: splitList(v.GetString("cors.origins")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("jwt.secret"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			Type:    v.GetString("cache.type"),
			TTL:     v.GetDuration("cache.ttl"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Tax: TaxConfig{
			MutationMaxRetries: v.GetUint64("tax.mutation_max_retries"),
			MutationRetryWait:  v.GetDuration("tax.mutation_retry_wait"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("log.level"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		if cfg.Server.Mode == "release" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in release mode")
		}
		cfg.Auth.JWTSecret = "default_super_secret_key"
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("cors.origins", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "postgres")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "inmemory")
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("tax.mutation_max_retries", 3)
	v.SetDefault("tax.mutation_retry_wait", 50*time.Millisecond)
	v.SetDefault("log.level", "info")
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
