package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/errors"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

type resultRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewResultRepository creates a new gorm-backed result repository
func NewResultRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ResultRepository {
	return &resultRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes the result and reloads the stored row into result, so the
// caller sees the id and created_at kept from an earlier calculation.
func (r *resultRepository) Upsert(ctx context.Context, result *model.QuizResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "quiz_id"}, {Name: "couple_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user1_id", "user2_id", "score", "user1_percent", "user2_percent",
			"reference_user_id", "reference_source", "question_count",
			"strengths", "weaknesses", "updated_at",
		}),
	}).Create(result).Error
	if err != nil {
		r.logger.Error("Failed to upsert result",
			zap.String("quiz_id", result.QuizID),
			zap.String("couple_id", result.CoupleID),
			zap.Error(err))
		return domainErrors.NewStoreFailureError("upsert result", err)
	}

	stored, err := r.Get(ctx, result.QuizID, result.CoupleID)
	if err != nil {
		return err
	}
	if stored != nil {
		*result = *stored
	}
	return nil
}

func (r *resultRepository) Get(ctx context.Context, quizID, coupleID string) (*model.QuizResult, error) {
	var result model.QuizResult

	err := r.db.WithContext(ctx).
		Where("quiz_id = ? AND couple_id = ?", quizID, coupleID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get result",
			zap.String("quiz_id", quizID),
			zap.String("couple_id", coupleID),
			zap.Error(err))
		return nil, domainErrors.NewStoreFailureError("get result", err)
	}

	return &result, nil
}

func (r *resultRepository) ListByCouple(ctx context.Context, coupleID string) ([]model.QuizResult, error) {
	var results []model.QuizResult

	err := r.db.WithContext(ctx).
		Where("couple_id = ?", coupleID).
		Order("updated_at DESC").
		Find(&results).Error
	if err != nil {
		r.logger.Error("Failed to list results", zap.String("couple_id", coupleID), zap.Error(err))
		return nil, domainErrors.NewStoreFailureError("list results", err)
	}

	return results, nil
}
