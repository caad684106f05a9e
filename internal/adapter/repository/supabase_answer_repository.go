package repository

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

const answersTable = "quiz_answers"

type supabaseAnswerRepository struct {
	client *SupabaseClient
}

// NewSupabaseAnswerRepository creates an answer repository over Supabase REST.
// ReplaceAnswers is a DELETE followed by a POST: PostgREST offers no
// transaction across the two, so a failed insert leaves the user without answers.
func NewSupabaseAnswerRepository(client *SupabaseClient) domainRepo.AnswerRepository {
	return &supabaseAnswerRepository{client: client}
}

// answerInsert omits created_at so the table default applies.
type answerInsert struct {
	ID          uuid.UUID  `json:"id"`
	QuizID      string     `json:"quiz_id"`
	QuestionID  string     `json:"question_id"`
	UserID      string     `json:"user_id"`
	CoupleID    string     `json:"couple_id"`
	AnswerValue int        `json:"answer_value"`
	AnsweredAt  *time.Time `json:"answered_at,omitempty"`
}

func (r *supabaseAnswerRepository) ListByUser(ctx context.Context, quizID, userID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.client.do(ctx, restRequest{
		op:     "list answers",
		method: http.MethodGet,
		table:  answersTable,
		query: url.Values{
			"select":  {"*"},
			"quiz_id": {eq(quizID)},
			"user_id": {eq(userID)},
			"order":   {"created_at.asc"},
		},
	}, &answers)
	return answers, err
}

func (r *supabaseAnswerRepository) ListPartnerAnswers(ctx context.Context, quizID, coupleID, excludingUserID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.client.do(ctx, restRequest{
		op:     "list partner answers",
		method: http.MethodGet,
		table:  answersTable,
		query: url.Values{
			"select":    {"*"},
			"quiz_id":   {eq(quizID)},
			"couple_id": {eq(coupleID)},
			"user_id":   {"neq." + excludingUserID},
			"order":     {"created_at.asc"},
		},
	}, &answers)
	return answers, err
}

func (r *supabaseAnswerRepository) ReplaceAnswers(ctx context.Context, quizID, userID string, answers []model.Answer) error {
	err := r.client.do(ctx, restRequest{
		op:     "delete answers",
		method: http.MethodDelete,
		table:  answersTable,
		query: url.Values{
			"quiz_id": {eq(quizID)},
			"user_id": {eq(userID)},
		},
	}, nil)
	if err != nil || len(answers) == 0 {
		return err
	}

	rows := make([]answerInsert, len(answers))
	for i, a := range answers {
		id := a.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		rows[i] = answerInsert{
			ID:          id,
			QuizID:      quizID,
			QuestionID:  a.QuestionID,
			UserID:      userID,
			CoupleID:    a.CoupleID,
			AnswerValue: a.AnswerValue,
			AnsweredAt:  a.AnsweredAt,
		}
	}

	return r.client.do(ctx, restRequest{
		op:     "insert answers",
		method: http.MethodPost,
		table:  answersTable,
		body:   rows,
		prefer: "return=minimal",
	}, nil)
}

func (r *supabaseAnswerRepository) ListRecentPairs(ctx context.Context, since time.Time) ([]model.QuizCouple, error) {
	var rows []model.QuizCouple
	err := r.client.do(ctx, restRequest{
		op:     "list recent pairs",
		method: http.MethodGet,
		table:  answersTable,
		query: url.Values{
			"select":     {"quiz_id,couple_id"},
			"created_at": {"gt." + since.UTC().Format(time.RFC3339Nano)},
			"order":      {"quiz_id.asc,couple_id.asc"},
		},
	}, &rows)
	if err != nil {
		return nil, err
	}

	// PostgREST has no DISTINCT; rows come back one per answer.
	seen := make(map[model.QuizCouple]struct{}, len(rows))
	pairs := make([]model.QuizCouple, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		pairs = append(pairs, row)
	}
	return pairs, nil
}
