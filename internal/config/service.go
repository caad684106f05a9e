package config

import (
	"time"

	"github.com/AREOPAGO7/ZOOJ-sub001/pkg/logger"
)

type ServiceConfig struct {
	Name        string
	Environment string
	ClientURL   string
}

// ScoringConfig selects the tie-break policy and the background reconcile schedule.
type ScoringConfig struct {
	TieBreakPolicy    string
	EvenPicksFirst    bool
	ReconcileEnabled  bool
	ReconcileInterval time.Duration
}

// CatalogConfig points at the optional quiz catalog seed file.
type CatalogConfig struct {
	SeedPath string
}

type LogConfig struct {
	Level       string
	Format      string
	Output      string
	FilePath    string
	Development bool
}

// LoggerConfig converts the log section for pkg/logger.
func (c LogConfig) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       c.Level,
		Format:      c.Format,
		Output:      c.Output,
		FilePath:    c.FilePath,
		Development: c.Development,
	}
}
