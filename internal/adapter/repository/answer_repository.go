package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/errors"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

type answerRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAnswerRepository creates a new gorm-backed answer repository
func NewAnswerRepository(db *gorm.DB, logger *zap.Logger) domainRepo.AnswerRepository {
	return &answerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *answerRepository) ListByUser(ctx context.Context, quizID, userID string) ([]model.Answer, error) {
	var answers []model.Answer

	err := r.db.WithContext(ctx).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		r.logger.Error("Failed to list answers",
			zap.String("quiz_id", quizID),
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, domainErrors.NewStoreFailureError("list answers", err)
	}

	return answers, nil
}

func (r *answerRepository) ListPartnerAnswers(ctx context.Context, quizID, coupleID, excludingUserID string) ([]model.Answer, error) {
	var answers []model.Answer

	err := r.db.WithContext(ctx).
		Where("quiz_id = ? AND couple_id = ? AND user_id <> ?", quizID, coupleID, excludingUserID).
		Order("created_at ASC").
		Find(&answers).Error
	if err != nil {
		r.logger.Error("Failed to list partner answers",
			zap.String("quiz_id", quizID),
			zap.String("couple_id", coupleID),
			zap.Error(err))
		return nil, domainErrors.NewStoreFailureError("list partner answers", err)
	}

	return answers, nil
}

// ReplaceAnswers deletes and inserts inside one transaction, so a reader never
// sees a half-replaced answer set.
func (r *answerRepository) ReplaceAnswers(ctx context.Context, quizID, userID string, answers []model.Answer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ? AND user_id = ?", quizID, userID).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}

		rows := make([]model.Answer, len(answers))
		for i, a := range answers {
			if a.ID == uuid.Nil {
				a.ID = uuid.New()
			}
			a.QuizID = quizID
			a.UserID = userID
			rows[i] = a
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		r.logger.Error("Failed to replace answers",
			zap.String("quiz_id", quizID),
			zap.String("user_id", userID),
			zap.Int("count", len(answers)),
			zap.Error(err))
		return domainErrors.NewStoreFailureError("replace answers", err)
	}

	return nil
}

func (r *answerRepository) ListRecentPairs(ctx context.Context, since time.Time) ([]model.QuizCouple, error) {
	var pairs []model.QuizCouple

	err := r.db.WithContext(ctx).
		Model(&model.Answer{}).
		Distinct("quiz_id", "couple_id").
		Where("created_at > ?", since).
		Order("quiz_id ASC, couple_id ASC").
		Scan(&pairs).Error
	if err != nil {
		r.logger.Error("Failed to list recently answered pairs", zap.Time("since", since), zap.Error(err))
		return nil, domainErrors.NewStoreFailureError("list recent pairs", err)
	}

	return pairs, nil
}
