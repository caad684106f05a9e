package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainErrors "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/errors"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

// QuizRepository reads and seeds the quiz catalog
type QuizRepository interface {
	domainRepo.QuizRepository
	domainRepo.CatalogWriter
}

type quizRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewQuizRepository creates a new gorm-backed quiz repository
func NewQuizRepository(db *gorm.DB, logger *zap.Logger) QuizRepository {
	return &quizRepository{
		db:     db,
		logger: logger,
	}
}

func (r *quizRepository) GetQuiz(ctx context.Context, quizID string) (*model.Quiz, error) {
	var quiz model.Quiz

	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", quizID).
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get quiz", zap.String("quiz_id", quizID), zap.Error(err))
		return nil, domainErrors.NewStoreFailureError("get quiz", err)
	}

	return &quiz, nil
}

func (r *quizRepository) ListQuestions(ctx context.Context, quizID string) ([]model.Question, error) {
	var questions []model.Question

	err := r.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("position ASC").
		Find(&questions).Error
	if err != nil {
		r.logger.Error("Failed to list questions", zap.String("quiz_id", quizID), zap.Error(err))
		return nil, domainErrors.NewStoreFailureError("list questions", err)
	}

	return questions, nil
}

func (r *quizRepository) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz

	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&quizzes).Error; err != nil {
		r.logger.Error("Failed to list quizzes", zap.Error(err))
		return nil, domainErrors.NewStoreFailureError("list quizzes", err)
	}

	return quizzes, nil
}

// SaveQuiz upserts the quiz row and replaces its questions; question order
// follows the slice order.
func (r *quizRepository) SaveQuiz(ctx context.Context, quiz *model.Quiz) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "category", "description"}),
		}).Create(quiz).Error
		if err != nil {
			return err
		}

		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if len(quiz.Questions) == 0 {
			return nil
		}

		for i := range quiz.Questions {
			quiz.Questions[i].QuizID = quiz.ID
			quiz.Questions[i].Position = i + 1
		}
		return tx.Create(&quiz.Questions).Error
	})
	if err != nil {
		r.logger.Error("Failed to save quiz", zap.String("quiz_id", quiz.ID), zap.Error(err))
		return domainErrors.NewStoreFailureError("save quiz", err)
	}

	return nil
}
