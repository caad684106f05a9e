package config

import (
	"fmt"
	"time"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverSupabase = "supabase"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	Name       string
	User       string
	Password   string
	SSLMode    string
	SQLitePath string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// SupabaseConfig holds the project endpoint and keys used for REST access and JWT checks.
type SupabaseConfig struct {
	ProjectURL string
	APIKey     string
	JWTSecret  string
}

// RedisConfig holds the optional Redis connection used for caching and result events.
type RedisConfig struct {
	Enabled       bool
	Addr          string
	Password      string
	DB            int
	ResultChannel string
}

// Cache drivers
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// CacheConfig controls the answer cache.
type CacheConfig struct {
	Driver    string
	AnswerTTL time.Duration
}
