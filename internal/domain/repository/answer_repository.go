package repository

import (
	"context"
	"time"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

// AnswerRepository persists quiz answers
type AnswerRepository interface {
	// ListByUser returns userID's answers to quizID.
	ListByUser(ctx context.Context, quizID, userID string) ([]model.Answer, error)
	// ListPartnerAnswers returns the answers to quizID from coupleID's members other than excludingUserID.
	ListPartnerAnswers(ctx context.Context, quizID, coupleID, excludingUserID string) ([]model.Answer, error)
	// ReplaceAnswers deletes userID's previous answers to quizID and stores answers in their place.
	ReplaceAnswers(ctx context.Context, quizID, userID string, answers []model.Answer) error
	// ListRecentPairs returns the distinct (quiz, couple) pairs with answers created after since.
	ListRecentPairs(ctx context.Context, since time.Time) ([]model.QuizCouple, error)
}
