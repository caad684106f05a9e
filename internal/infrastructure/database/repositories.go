package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/adapter/repository"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/config"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Quiz   domainRepo.QuizRepository
	Answer domainRepo.AnswerRepository
	Result domainRepo.ResultRepository
	Couple domainRepo.CoupleRepository
	// Catalog is nil when the backend cannot be seeded (supabase)
	Catalog domainRepo.CatalogWriter
}

// NewRepositories creates gorm-backed repositories
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	quizRepo := repository.NewQuizRepository(db, logger)
	return &Repositories{
		Quiz:    quizRepo,
		Answer:  repository.NewAnswerRepository(db, logger),
		Result:  repository.NewResultRepository(db, logger),
		Couple:  repository.NewCoupleRepository(db, logger),
		Catalog: quizRepo,
	}
}

// NewSupabaseRepositories creates repositories that talk to Supabase PostgREST
func NewSupabaseRepositories(cfg *config.SupabaseConfig, logger *zap.Logger) *Repositories {
	client := repository.NewSupabaseClient(cfg.ProjectURL, cfg.APIKey, logger)
	return &Repositories{
		Quiz:   repository.NewSupabaseQuizRepository(client),
		Answer: repository.NewSupabaseAnswerRepository(client),
		Result: repository.NewSupabaseResultRepository(client),
		Couple: repository.NewSupabaseCoupleRepository(client),
	}
}

// Open builds the repositories for the configured driver. The returned db is
// nil for supabase; callers close it with Close when it is not.
func Open(cfg *config.Config, logger *zap.Logger) (*Repositories, *gorm.DB, error) {
	if cfg.Database.Driver == config.DriverSupabase {
		logger.Info("Using Supabase REST storage", zap.String("project_url", cfg.Supabase.ProjectURL))
		return NewSupabaseRepositories(&cfg.Supabase, logger), nil, nil
	}

	db, err := NewConnection(&cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(db, logger); err != nil {
		_ = Close(db, logger)
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return NewRepositories(db, logger), db, nil
}
