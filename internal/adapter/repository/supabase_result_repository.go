package repository

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

const resultsTable = "quiz_results"

type supabaseResultRepository struct {
	client *SupabaseClient
	now    func() time.Time
}

// NewSupabaseResultRepository creates a result repository over Supabase REST
func NewSupabaseResultRepository(client *SupabaseClient) domainRepo.ResultRepository {
	return &supabaseResultRepository{client: client, now: time.Now}
}

// resultUpsert leaves id and created_at to the table so a repeated upsert keeps them.
type resultUpsert struct {
	QuizID          string                   `json:"quiz_id"`
	CoupleID        string                   `json:"couple_id"`
	User1ID         string                   `json:"user1_id"`
	User2ID         string                   `json:"user2_id"`
	Score           int                      `json:"score"`
	User1Percent    int                      `json:"user1_percent"`
	User2Percent    int                      `json:"user2_percent"`
	ReferenceUserID string                   `json:"reference_user_id"`
	ReferenceSource string                   `json:"reference_source"`
	QuestionCount   int                      `json:"question_count"`
	Strengths       []model.ComparisonRecord `json:"strengths"`
	Weaknesses      []model.ComparisonRecord `json:"weaknesses"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func (r *supabaseResultRepository) Upsert(ctx context.Context, result *model.QuizResult) error {
	row := resultUpsert{
		QuizID:          result.QuizID,
		CoupleID:        result.CoupleID,
		User1ID:         result.User1ID,
		User2ID:         result.User2ID,
		Score:           result.Score,
		User1Percent:    result.User1Percent,
		User2Percent:    result.User2Percent,
		ReferenceUserID: result.ReferenceUserID,
		ReferenceSource: result.ReferenceSource,
		QuestionCount:   result.QuestionCount,
		Strengths:       nonNil(result.Strengths),
		Weaknesses:      nonNil(result.Weaknesses),
		UpdatedAt:       r.now().UTC(),
	}

	var stored []model.QuizResult
	err := r.client.do(ctx, restRequest{
		op:     "upsert result",
		method: http.MethodPost,
		table:  resultsTable,
		query:  url.Values{"on_conflict": {"quiz_id,couple_id"}},
		body:   []resultUpsert{row},
		prefer: "resolution=merge-duplicates,return=representation",
	}, &stored)
	if err != nil {
		return err
	}
	if len(stored) > 0 {
		*result = stored[0]
	}
	return nil
}

func (r *supabaseResultRepository) Get(ctx context.Context, quizID, coupleID string) (*model.QuizResult, error) {
	var results []model.QuizResult
	err := r.client.do(ctx, restRequest{
		op:     "get result",
		method: http.MethodGet,
		table:  resultsTable,
		query: url.Values{
			"select":    {"*"},
			"quiz_id":   {eq(quizID)},
			"couple_id": {eq(coupleID)},
			"limit":     {"1"},
		},
	}, &results)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

func (r *supabaseResultRepository) ListByCouple(ctx context.Context, coupleID string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.client.do(ctx, restRequest{
		op:     "list results",
		method: http.MethodGet,
		table:  resultsTable,
		query: url.Values{
			"select":    {"*"},
			"couple_id": {eq(coupleID)},
			"order":     {"updated_at.desc"},
		},
	}, &results)
	return results, err
}

func nonNil(records []model.ComparisonRecord) []model.ComparisonRecord {
	if records == nil {
		return []model.ComparisonRecord{}
	}
	return records
}
