package repository

import (
	"context"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

// ResultPublisher announces freshly calculated results, so partners waiting
// on the result screen can refresh without polling.
type ResultPublisher interface {
	PublishResultUpdated(ctx context.Context, result *model.QuizResult) error
}
