package repository

import (
	"context"
	"time"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

// AnswerCache memoizes answer lookups for a bounded time.
type AnswerCache interface {
	// Get returns the cached answers and whether a fresh entry was found.
	Get(ctx context.Context, key string) ([]model.Answer, bool, error)
	Set(ctx context.Context, key string, answers []model.Answer, ttl time.Duration) error
	Invalidate(ctx context.Context, keys ...string) error
}

// UserAnswersKey is the cache key for one user's answers to a quiz.
func UserAnswersKey(quizID, userID string) string {
	return "answers:" + quizID + ":user:" + userID
}

// PartnerAnswersKey is the cache key for the answers of coupleID's members other than excludingUserID.
func PartnerAnswersKey(quizID, coupleID, excludingUserID string) string {
	return "answers:" + quizID + ":couple:" + coupleID + ":not:" + excludingUserID
}
