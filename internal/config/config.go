package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/AREOPAGO7/ZOOJ-sub001/pkg/config"
)

// ServiceName is the config file name and the environment variable prefix (COMPAT_*).
const ServiceName = "compat"

type Config struct {
	Service  ServiceConfig
	Server   ServerConfig
	Database DatabaseConfig
	Supabase SupabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Scoring  ScoringConfig
	Catalog  CatalogConfig
	Log      LogConfig
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":                       ServiceName,
		"service.environment":                "dev",
		"server.http.port":                   8080,
		"server.grpc.port":                   9090,
		"database.driver":                    DriverPostgres,
		"database.port":                      5432,
		"database.sslmode":                   "disable",
		"database.sqlite_path":               "compat.db",
		"database.max_open_conns":            25,
		"database.max_idle_conns":            5,
		"database.conn_max_lifetime":         "5m",
		"redis.db":                           0,
		"redis.result_channel":               "quiz_result.updated",
		"cache.driver":                       CacheMemory,
		"cache.answer_ttl":                   "5m",
		"scoring.tie_break.policy":           "quiz_id_parity",
		"scoring.tie_break.even_picks_first": true,
		"scoring.reconcile_enabled":          true,
		"scoring.reconcile_interval":         "10s",
		"log.level":                          "info",
		"log.format":                         "json",
		"log.output":                         "stdout",
	}
}

// LoadConfig reads configs/{APP_ENV}/compat.yaml through pkg/config.
func LoadConfig() (*Config, error) {
	src, err := pkgconfig.Load(ServiceName, defaults())
	if err != nil {
		return nil, err
	}
	return FromSource(src)
}

// FromSource maps raw settings into the typed config and validates it.
func FromSource(src pkgconfig.Config) (*Config, error) {
	cfg := &Config{
		Service: ServiceConfig{
			Name:        src.GetString("service.name"),
			Environment: src.GetString("service.environment"),
			ClientURL:   src.GetString("service.client_url"),
		},
		Server: ServerConfig{
			HTTP: HTTPConfig{Host: src.GetString("server.http.host"), Port: src.GetInt("server.http.port")},
			GRPC: GRPCConfig{Host: src.GetString("server.grpc.host"), Port: src.GetInt("server.grpc.port")},
		},
		Database: DatabaseConfig{
			Driver:          src.GetString("database.driver"),
			Host:            src.GetString("database.host"),
			Port:            src.GetInt("database.port"),
			Name:            src.GetString("database.name"),
			User:            src.GetString("database.user"),
			Password:        src.GetString("database.password"),
			SSLMode:         src.GetString("database.sslmode"),
			SQLitePath:      src.GetString("database.sqlite_path"),
			MaxOpenConns:    src.GetInt("database.max_open_conns"),
			MaxIdleConns:    src.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: src.GetDuration("database.conn_max_lifetime"),
		},
		Supabase: SupabaseConfig{
			ProjectURL: src.GetString("supabase.project_url"),
			APIKey:     src.GetString("supabase.api_key"),
			JWTSecret:  src.GetString("supabase.jwt_secret"),
		},
		Redis: RedisConfig{
			Enabled:       src.GetBool("redis.enabled"),
			Addr:          src.GetString("redis.addr"),
			Password:      src.GetString("redis.password"),
			DB:            src.GetInt("redis.db"),
			ResultChannel: src.GetString("redis.result_channel"),
		},
		Cache: CacheConfig{
			Driver:    src.GetString("cache.driver"),
			AnswerTTL: src.GetDuration("cache.answer_ttl"),
		},
		Scoring: ScoringConfig{
			TieBreakPolicy:    src.GetString("scoring.tie_break.policy"),
			EvenPicksFirst:    src.GetBool("scoring.tie_break.even_picks_first"),
			ReconcileEnabled:  src.GetBool("scoring.reconcile_enabled"),
			ReconcileInterval: src.GetDuration("scoring.reconcile_interval"),
		},
		Catalog: CatalogConfig{
			SeedPath: src.GetString("catalog.seed_path"),
		},
		Log: LogConfig{
			Level:       src.GetString("log.level"),
			Format:      src.GetString("log.format"),
			Output:      src.GetString("log.output"),
			FilePath:    src.GetString("log.file_path"),
			Development: src.GetBool("log.development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	case DriverSupabase:
		if c.Supabase.ProjectURL == "" || c.Supabase.APIKey == "" {
			return fmt.Errorf("database.driver %q requires supabase.project_url and supabase.api_key", DriverSupabase)
		}
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}

	switch c.Cache.Driver {
	case CacheMemory:
	case CacheRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("cache.driver %q requires redis.enabled", CacheRedis)
		}
	default:
		return fmt.Errorf("unsupported cache.driver %q", c.Cache.Driver)
	}

	if c.Cache.AnswerTTL <= 0 {
		c.Cache.AnswerTTL = 5 * time.Minute
	}
	if c.Scoring.ReconcileInterval <= 0 {
		c.Scoring.ReconcileInterval = 10 * time.Second
	}
	return nil
}
