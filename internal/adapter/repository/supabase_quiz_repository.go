package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

type supabaseQuizRepository struct {
	client *SupabaseClient
}

// NewSupabaseQuizRepository reads the quiz catalog from Supabase. The catalog
// itself is managed in the Supabase project, so no CatalogWriter is offered.
func NewSupabaseQuizRepository(client *SupabaseClient) domainRepo.QuizRepository {
	return &supabaseQuizRepository{client: client}
}

func (r *supabaseQuizRepository) GetQuiz(ctx context.Context, quizID string) (*model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.client.do(ctx, restRequest{
		op:     "get quiz",
		method: http.MethodGet,
		table:  "quizzes",
		query: url.Values{
			"select": {"id,title,category,description,created_at"},
			"id":     {eq(quizID)},
			"limit":  {"1"},
		},
	}, &quizzes)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return nil, nil
	}

	quiz := &quizzes[0]
	quiz.Questions, err = r.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *supabaseQuizRepository) ListQuestions(ctx context.Context, quizID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.client.do(ctx, restRequest{
		op:     "list questions",
		method: http.MethodGet,
		table:  "quiz_questions",
		query: url.Values{
			"select":  {"*"},
			"quiz_id": {eq(quizID)},
			"order":   {"position.asc"},
		},
	}, &questions)
	return questions, err
}

func (r *supabaseQuizRepository) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.client.do(ctx, restRequest{
		op:     "list quizzes",
		method: http.MethodGet,
		table:  "quizzes",
		query: url.Values{
			"select": {"id,title,category,description,created_at"},
			"order":  {"created_at.asc,id.asc"},
		},
	}, &quizzes)
	return quizzes, err
}
