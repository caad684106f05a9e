package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

// Tie-break policy names accepted by NewTieBreaker.
const (
	PolicyQuizIDParity = "quiz_id_parity"
	PolicyUserIDOrder  = "user_id_order"
)

// Reference is the participant whose answers serve as the baseline for a quiz.
type Reference struct {
	UserID string
	Source string
}

// TieBreaker picks the reference when answer times give no usable ordering.
type TieBreaker interface {
	// Reference returns firstUserID or secondUserID.
	Reference(quizID, firstUserID, secondUserID string) string
}

// NewTieBreaker builds the tie-break policy named by policy.
func NewTieBreaker(policy string, evenPicksFirst bool) (TieBreaker, error) {
	switch policy {
	case "", PolicyQuizIDParity:
		return NewQuizIDParity(evenPicksFirst), nil
	case PolicyUserIDOrder:
		return UserIDOrder{}, nil
	default:
		return nil, fmt.Errorf("unknown tie-break policy %q", policy)
	}
}

// SelectReference returns the participant who answered first. When either side
// has no answer time, or both times are equal, tieBreaker decides.
func SelectReference(quizID string, first, second Participant, tieBreaker TieBreaker) Reference {
	firstAt := earliestAnswer(first.Answers)
	secondAt := earliestAnswer(second.Answers)

	if firstAt != nil && secondAt != nil && !firstAt.Equal(*secondAt) {
		if firstAt.Before(*secondAt) {
			return Reference{UserID: first.UserID, Source: model.ReferenceSourceAnsweredAt}
		}
		return Reference{UserID: second.UserID, Source: model.ReferenceSourceAnsweredAt}
	}

	return Reference{
		UserID: tieBreaker.Reference(quizID, first.UserID, second.UserID),
		Source: model.ReferenceSourceTieBreak,
	}
}

func earliestAnswer(answers []model.Answer) *time.Time {
	var earliest *time.Time
	for i := range answers {
		at := answers[i].AnsweredAt
		if at == nil {
			continue
		}
		if earliest == nil || at.Before(*earliest) {
			earliest = at
		}
	}
	return earliest
}

// QuizIDParity treats an even numeric quiz id as "participant 1 is the reference"
// (or participant 2 when EvenPicksFirst is false). Non-numeric ids fall back to
// UserIDOrder.
type QuizIDParity struct {
	EvenPicksFirst bool
	fallback       TieBreaker
}

// NewQuizIDParity creates the parity tie-breaker.
func NewQuizIDParity(evenPicksFirst bool) QuizIDParity {
	return QuizIDParity{EvenPicksFirst: evenPicksFirst, fallback: UserIDOrder{}}
}

// Reference picks by the parity of the numeric quiz id.
func (p QuizIDParity) Reference(quizID, firstUserID, secondUserID string) string {
	n, err := strconv.ParseInt(quizID, 10, 64)
	if err != nil {
		fallback := p.fallback
		if fallback == nil {
			fallback = UserIDOrder{}
		}
		return fallback.Reference(quizID, firstUserID, secondUserID)
	}

	even := n%2 == 0
	if even == p.EvenPicksFirst {
		return firstUserID
	}
	return secondUserID
}

// UserIDOrder picks the lexicographically smaller user id.
type UserIDOrder struct{}

// Reference returns the smaller of the two user ids.
func (UserIDOrder) Reference(_, firstUserID, secondUserID string) string {
	if secondUserID < firstUserID {
		return secondUserID
	}
	return firstUserID
}
