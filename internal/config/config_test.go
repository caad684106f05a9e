package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgconfig "github.com/AREOPAGO7/ZOOJ-sub001/pkg/config"
)

func baseSettings() map[string]interface{} {
	settings := defaults()
	settings["database.driver"] = DriverSQLite
	return settings
}

func TestFromSource(t *testing.T) {
	settings := baseSettings()
	settings["cache.answer_ttl"] = "90s"
	settings["scoring.tie_break.policy"] = "user_id_order"
	settings["scoring.tie_break.even_picks_first"] = false

	cfg, err := FromSource(pkgconfig.FromMap(settings))

	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 90*time.Second, cfg.Cache.AnswerTTL)
	assert.Equal(t, 10*time.Second, cfg.Scoring.ReconcileInterval)
	assert.Equal(t, "user_id_order", cfg.Scoring.TieBreakPolicy)
	assert.False(t, cfg.Scoring.EvenPicksFirst)
	assert.Equal(t, "quiz_result.updated", cfg.Redis.ResultChannel)
}

func TestFromSource_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		override map[string]interface{}
	}{
		{"unknown driver", map[string]interface{}{"database.driver": "mongo"}},
		{"supabase without keys", map[string]interface{}{"database.driver": DriverSupabase}},
		{"redis cache without redis", map[string]interface{}{"cache.driver": CacheRedis}},
		{"unknown cache", map[string]interface{}{"cache.driver": "memcached"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := baseSettings()
			for k, v := range tt.override {
				settings[k] = v
			}

			_, err := FromSource(pkgconfig.FromMap(settings))
			assert.Error(t, err)
		})
	}
}

func TestFromSource_ZeroDurationsFallBack(t *testing.T) {
	settings := baseSettings()
	settings["cache.answer_ttl"] = "0s"
	settings["scoring.reconcile_interval"] = "0s"

	cfg, err := FromSource(pkgconfig.FromMap(settings))

	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Cache.AnswerTTL)
	assert.Equal(t, 10*time.Second, cfg.Scoring.ReconcileInterval)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "secret", Name: "compat", SSLMode: "require"}

	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=compat sslmode=require", c.DSN())
}
