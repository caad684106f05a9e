package dto

import (
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

// CalculationStatus tells whether a result could be computed
type CalculationStatus string

const (
	// StatusReady means both partners answered and the result is stored.
	StatusReady CalculationStatus = "ready"
	// StatusWaitingForPartner means at least one partner has not answered yet.
	StatusWaitingForPartner CalculationStatus = "waiting_for_partner"
)

// AnswerInput is a single answer in a submission
type AnswerInput struct {
	QuestionID  string `json:"question_id" validate:"required"`
	AnswerValue int    `json:"answer_value" validate:"min=1,max=3"`
}

// SubmitAnswersRequest is the request body of POST /quizzes/:quizId/answers
type SubmitAnswersRequest struct {
	Answers []AnswerInput `json:"answers" validate:"required,min=1,dive"`
}

// SubmitAnswersInput carries a validated submission into the quiz service
type SubmitAnswersInput struct {
	QuizID  string
	UserID  string
	Answers []AnswerInput
}

// CalculationResult is the outcome of a (re)calculation attempt
type CalculationResult struct {
	Status CalculationStatus `json:"status"`
	Result *model.QuizResult `json:"result,omitempty"`
}

// SubmitAnswersResponse is returned after the caller's answers are stored
type SubmitAnswersResponse struct {
	QuizID      string            `json:"quiz_id"`
	CoupleID    string            `json:"couple_id"`
	AnswerCount int               `json:"answer_count"`
	Status      CalculationStatus `json:"status"`
	Result      *model.QuizResult `json:"result,omitempty"`
}

// QuizStatusResponse is what the client polls while waiting on the partner
type QuizStatusResponse struct {
	QuizID          string            `json:"quiz_id"`
	CoupleID        string            `json:"couple_id"`
	UserAnswered    bool              `json:"user_answered"`
	PartnerAnswered bool              `json:"partner_answered"`
	ResultReady     bool              `json:"result_ready"`
	Result          *model.QuizResult `json:"result,omitempty"`
}

// QuizSummary is a catalog entry without its questions
type QuizSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// QuizListResponse wraps the catalog listing
type QuizListResponse struct {
	Quizzes []QuizSummary `json:"quizzes"`
}
