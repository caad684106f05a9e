package repository

import (
	"context"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

// ResultRepository persists derived quiz results
type ResultRepository interface {
	// Upsert inserts or overwrites the result keyed by (quiz_id, couple_id).
	Upsert(ctx context.Context, result *model.QuizResult) error
	// Get returns nil, nil when no result exists.
	Get(ctx context.Context, quizID, coupleID string) (*model.QuizResult, error)
	// ListByCouple returns the couple's results, most recently updated first.
	ListByCouple(ctx context.Context, coupleID string) ([]model.QuizResult, error)
}
