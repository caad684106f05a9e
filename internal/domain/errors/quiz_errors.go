package errors

import (
	"fmt"

	apperrors "github.com/AREOPAGO7/ZOOJ-sub001/pkg/errors"
)

// QuizError represents errors related to quiz answering and scoring
type QuizError struct {
	Type     string
	Message  string
	QuizID   string
	CoupleID string
	UserID   string
	Cause    error
}

func (e *QuizError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.QuizID != "" {
		msg += fmt.Sprintf(" (quiz: %s", e.QuizID)
		if e.CoupleID != "" {
			msg += ", couple: " + e.CoupleID
		}
		if e.UserID != "" {
			msg += ", user: " + e.UserID
		}
		msg += ")"
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" - %v", e.Cause)
	}
	return msg
}

func (e *QuizError) Unwrap() error {
	return e.Cause
}

// Code maps the quiz error type onto the shared error codes so handlers can
// translate it with pkg/errors.
func (e *QuizError) Code() string {
	switch e.Type {
	case ErrTypeQuizNotFound, ErrTypeCoupleNotFound, ErrTypeResultNotFound:
		return apperrors.ErrNotFound
	case ErrTypeInvalidAnswer, ErrTypeUnknownQuestion:
		return apperrors.ErrInvalidArgument
	case ErrTypeNotCoupleMember:
		return apperrors.ErrUnauthorized
	case ErrTypeStoreUnavailable:
		return apperrors.ErrUnavailable
	default:
		return apperrors.ErrInternal
	}
}

// Quiz error types
const (
	ErrTypeQuizNotFound     = "QUIZ_NOT_FOUND"
	ErrTypeCoupleNotFound   = "COUPLE_NOT_FOUND"
	ErrTypeResultNotFound   = "RESULT_NOT_FOUND"
	ErrTypeNotCoupleMember  = "NOT_COUPLE_MEMBER"
	ErrTypeInvalidAnswer    = "INVALID_ANSWER"
	ErrTypeUnknownQuestion  = "UNKNOWN_QUESTION"
	ErrTypeStoreFailure     = "STORE_FAILURE"
	ErrTypeStoreUnavailable = "STORE_UNAVAILABLE"
)

// NewQuizNotFoundError creates a new quiz not found error
func NewQuizNotFoundError(quizID string) *QuizError {
	return &QuizError{
		Type:    ErrTypeQuizNotFound,
		Message: "quiz not found",
		QuizID:  quizID,
	}
}

// NewCoupleNotFoundError is returned when the user has no couple, or the couple id is unknown.
func NewCoupleNotFoundError(userID string) *QuizError {
	return &QuizError{
		Type:    ErrTypeCoupleNotFound,
		Message: "no couple found for user " + userID,
		UserID:  userID,
	}
}

// NewResultNotFoundError creates a new result not found error
func NewResultNotFoundError(quizID, coupleID string) *QuizError {
	return &QuizError{
		Type:     ErrTypeResultNotFound,
		Message:  "no result calculated yet",
		QuizID:   quizID,
		CoupleID: coupleID,
	}
}

// NewNotCoupleMemberError creates a new not couple member error
func NewNotCoupleMemberError(userID, coupleID string) *QuizError {
	return &QuizError{
		Type:     ErrTypeNotCoupleMember,
		Message:  "user is not a member of the couple",
		CoupleID: coupleID,
		UserID:   userID,
	}
}

// NewInvalidAnswerError creates a new invalid answer error
func NewInvalidAnswerError(quizID, message string) *QuizError {
	return &QuizError{
		Type:    ErrTypeInvalidAnswer,
		Message: message,
		QuizID:  quizID,
	}
}

// NewUnknownQuestionError is returned when a submitted question does not belong to the quiz.
func NewUnknownQuestionError(quizID, questionID string) *QuizError {
	return &QuizError{
		Type:    ErrTypeUnknownQuestion,
		Message: "question " + questionID + " does not belong to the quiz",
		QuizID:  quizID,
	}
}

// NewStoreFailureError wraps a failed read or write against the answer/result stores.
func NewStoreFailureError(op string, cause error) *QuizError {
	return &QuizError{
		Type:    ErrTypeStoreFailure,
		Message: op + " failed",
		Cause:   cause,
	}
}

// NewStoreUnavailableError is returned when the remote store cannot be reached.
func NewStoreUnavailableError(op string, cause error) *QuizError {
	return &QuizError{
		Type:    ErrTypeStoreUnavailable,
		Message: op + ": store unavailable",
		Cause:   cause,
	}
}

// IsQuizError checks if an error is a QuizError of the given type
func IsQuizError(err error, errType string) bool {
	var quizErr *QuizError
	if apperrors.As(err, &quizErr) {
		return quizErr.Type == errType
	}
	return false
}
