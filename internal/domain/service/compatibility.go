// Package service holds the pure scoring and aggregation rules for couple quizzes.
package service

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

const (
	// StrengthThreshold is the largest per-question difference still counted as a strength.
	StrengthThreshold = 1
	// differenceWeight maps the maximal average difference (2) to a score of 0.
	differenceWeight = 50
	maxScore         = 100
)

// ErrAnswersIncomplete means one of the participants has not answered yet.
// Callers treat it as "not ready", not as a failure.
var ErrAnswersIncomplete = errors.New("both participants must answer before scoring")

// Participant is one side of a couple together with their answers to a quiz.
type Participant struct {
	UserID  string
	Answers []model.Answer
}

// Comparison is the symmetric part of a score: it does not depend on who answered first.
type Comparison struct {
	Score             int
	AverageDifference float64
	QuestionCount     int
	Strengths         []model.ComparisonRecord
	Weaknesses        []model.ComparisonRecord
}

// Outcome is a full scoring result for one quiz and one couple.
type Outcome struct {
	Comparison
	User1ID         string
	User2ID         string
	User1Percent    int
	User2Percent    int
	ReferenceUserID string
	ReferenceSource string
}

// Scorer computes compatibility between two participants' answers.
type Scorer struct {
	tieBreaker TieBreaker
}

// NewScorer creates a scorer; tieBreaker decides the reference when answer times
// cannot order the participants. A nil tieBreaker uses quiz id parity.
func NewScorer(tieBreaker TieBreaker) *Scorer {
	if tieBreaker == nil {
		tieBreaker = NewQuizIDParity(true)
	}
	return &Scorer{tieBreaker: tieBreaker}
}

// Score compares first and second on quizID. first is participant 1: their
// answers populate UserAnswer in comparison records and User1Percent.
func (s *Scorer) Score(quizID string, first, second Participant, questions []model.Question) (*Outcome, error) {
	if len(first.Answers) == 0 || len(second.Answers) == 0 {
		return nil, ErrAnswersIncomplete
	}

	outcome := &Outcome{
		Comparison: Compare(first.Answers, second.Answers, questions),
		User1ID:    first.UserID,
		User2ID:    second.UserID,
	}

	ref := SelectReference(quizID, first, second, s.tieBreaker)
	outcome.ReferenceUserID = ref.UserID
	outcome.ReferenceSource = ref.Source

	// The reference participant has nothing to compare against and keeps 0.
	if ref.UserID == first.UserID {
		outcome.User2Percent = outcome.Score
	} else {
		outcome.User1Percent = outcome.Score
	}

	return outcome, nil
}

// Compare computes the symmetric score over the questions both sides answered.
// Records follow the quiz's question order; answered ids the quiz does not list
// come after, sorted. With no shared question the score is 0 and both lists are empty.
func Compare(first, second []model.Answer, questions []model.Question) Comparison {
	content := make(map[string]string, len(questions))
	for _, q := range questions {
		content[q.ID] = q.Content
	}

	firstValues := latestValues(first)
	secondValues := latestValues(second)

	cmp := Comparison{
		Strengths:  []model.ComparisonRecord{},
		Weaknesses: []model.ComparisonRecord{},
	}

	total := 0
	for _, questionID := range comparisonOrder(questions, firstValues) {
		b, ok := secondValues[questionID]
		if !ok {
			continue
		}
		a := firstValues[questionID]
		diff := absDiff(a, b)

		text, ok := content[questionID]
		if !ok || text == "" {
			text = questionID
		}

		record := model.ComparisonRecord{
			QuestionID:    questionID,
			Question:      text,
			UserAnswer:    a,
			PartnerAnswer: b,
			Difference:    diff,
		}
		if diff <= StrengthThreshold {
			cmp.Strengths = append(cmp.Strengths, record)
		} else {
			cmp.Weaknesses = append(cmp.Weaknesses, record)
		}

		total += diff
		cmp.QuestionCount++
	}

	if cmp.QuestionCount == 0 {
		return cmp
	}

	cmp.AverageDifference = float64(total) / float64(cmp.QuestionCount)
	cmp.Score = symmetricScore(total, cmp.QuestionCount)
	return cmp
}

// symmetricScore is round(100 - total/count*50), clamped to [0, 100].
// It is computed as (100*count - 50*total) / count to keep the rounding exact.
func symmetricScore(total, count int) int {
	numerator := decimal.NewFromInt(int64(maxScore*count - differenceWeight*total))
	score := numerator.Div(decimal.NewFromInt(int64(count))).Round(0).IntPart()
	return int(clamp(score, 0, maxScore))
}

// latestValues indexes answers by question. A repeated question keeps its last value.
func latestValues(answers []model.Answer) map[string]int {
	values := make(map[string]int, len(answers))
	for _, a := range answers {
		values[a.QuestionID] = a.AnswerValue
	}
	return values
}

func comparisonOrder(questions []model.Question, answered map[string]int) []string {
	order := make([]string, 0, len(answered))
	listed := make(map[string]bool, len(questions))
	for _, q := range questions {
		if listed[q.ID] {
			continue
		}
		listed[q.ID] = true
		if _, ok := answered[q.ID]; ok {
			order = append(order, q.ID)
		}
	}

	var extra []string
	for id := range answered {
		if !listed[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToResult converts the outcome into the persisted row for (quizID, coupleID).
// The id is left zero; stores assign or keep it on upsert.
func (o *Outcome) ToResult(quizID, coupleID string) *model.QuizResult {
	return &model.QuizResult{
		QuizID:          quizID,
		CoupleID:        coupleID,
		User1ID:         o.User1ID,
		User2ID:         o.User2ID,
		Score:           o.Score,
		User1Percent:    o.User1Percent,
		User2Percent:    o.User2Percent,
		ReferenceUserID: o.ReferenceUserID,
		ReferenceSource: o.ReferenceSource,
		QuestionCount:   o.QuestionCount,
		Strengths:       o.Strengths,
		Weaknesses:      o.Weaknesses,
	}
}
