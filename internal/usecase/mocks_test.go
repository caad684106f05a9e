package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
)

// MockQuizRepository is a mock implementation of QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetQuiz(ctx context.Context, quizID string) (*model.Quiz, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListQuestions(ctx context.Context, quizID string) ([]model.Question, error) {
	args := m.Called(ctx, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockQuizRepository) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quiz), args.Error(1)
}

// MockAnswerRepository is a mock implementation of AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) ListByUser(ctx context.Context, quizID, userID string) ([]model.Answer, error) {
	args := m.Called(ctx, quizID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Answer), args.Error(1)
}

func (m *MockAnswerRepository) ListPartnerAnswers(ctx context.Context, quizID, coupleID, excludingUserID string) ([]model.Answer, error) {
	args := m.Called(ctx, quizID, coupleID, excludingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Answer), args.Error(1)
}

func (m *MockAnswerRepository) ReplaceAnswers(ctx context.Context, quizID, userID string, answers []model.Answer) error {
	args := m.Called(ctx, quizID, userID, answers)
	return args.Error(0)
}

func (m *MockAnswerRepository) ListRecentPairs(ctx context.Context, since time.Time) ([]model.QuizCouple, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuizCouple), args.Error(1)
}

// MockResultRepository is a mock implementation of ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Upsert(ctx context.Context, result *model.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) Get(ctx context.Context, quizID, coupleID string) (*model.QuizResult, error) {
	args := m.Called(ctx, quizID, coupleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuizResult), args.Error(1)
}

func (m *MockResultRepository) ListByCouple(ctx context.Context, coupleID string) ([]model.QuizResult, error) {
	args := m.Called(ctx, coupleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuizResult), args.Error(1)
}

// MockCoupleRepository is a mock implementation of CoupleRepository
type MockCoupleRepository struct {
	mock.Mock
}

func (m *MockCoupleRepository) GetByID(ctx context.Context, coupleID string) (*model.Couple, error) {
	args := m.Called(ctx, coupleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Couple), args.Error(1)
}

func (m *MockCoupleRepository) GetByMember(ctx context.Context, userID string) (*model.Couple, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Couple), args.Error(1)
}

// MockResultPublisher is a mock implementation of ResultPublisher
type MockResultPublisher struct {
	mock.Mock
}

func (m *MockResultPublisher) PublishResultUpdated(ctx context.Context, result *model.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}
