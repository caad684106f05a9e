package repository

import (
	"context"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

// QuizRepository reads the quiz catalog
type QuizRepository interface {
	// GetQuiz returns nil, nil when the quiz does not exist.
	GetQuiz(ctx context.Context, quizID string) (*model.Quiz, error)
	// ListQuestions returns the quiz's questions ordered by position.
	ListQuestions(ctx context.Context, quizID string) ([]model.Question, error)
	ListQuizzes(ctx context.Context) ([]model.Quiz, error)
}

// CatalogWriter seeds the quiz catalog
type CatalogWriter interface {
	// SaveQuiz creates or updates the quiz and replaces its questions.
	SaveQuiz(ctx context.Context, quiz *model.Quiz) error
}

// CoupleRepository resolves couples
type CoupleRepository interface {
	// GetByID returns nil, nil when the couple does not exist.
	GetByID(ctx context.Context, coupleID string) (*model.Couple, error)
	// GetByMember returns nil, nil when the user is not in a couple.
	GetByMember(ctx context.Context, userID string) (*model.Couple, error)
}
