package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/adapter/cache"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/dto"
	domainErrors "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/errors"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/service"
	apperrors "github.com/AREOPAGO7/ZOOJ-sub001/pkg/errors"
)

var (
	submitTime  = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	partnerTime = submitTime.Add(-time.Hour)
	testCouple  = &model.Couple{ID: "couple-1", User1ID: "user-a", User2ID: "user-b"}
)

func testQuiz() *model.Quiz {
	return &model.Quiz{
		ID:    "7",
		Title: "Weekend plans",
		Questions: []model.Question{
			{ID: "q1", QuizID: "7", Content: "Beach or mountains?", Position: 1},
			{ID: "q2", QuizID: "7", Content: "Early riser?", Position: 2},
			{ID: "q3", QuizID: "7", Content: "Cook or order in?", Position: 3},
		},
	}
}

func answersOf(userID string, at time.Time, values ...int) []model.Answer {
	answers := make([]model.Answer, 0, len(values))
	for i, v := range values {
		stamp := at
		answers = append(answers, model.Answer{
			QuizID:      "7",
			QuestionID:  "q" + string(rune('1'+i)),
			UserID:      userID,
			CoupleID:    testCouple.ID,
			AnswerValue: v,
			AnsweredAt:  &stamp,
		})
	}
	return answers
}

type quizServiceFixture struct {
	quizzes   *MockQuizRepository
	answers   *MockAnswerRepository
	results   *MockResultRepository
	couples   *MockCoupleRepository
	publisher *MockResultPublisher
	cache     *cache.MemoryCache
	service   *QuizService
}

func newQuizServiceFixture() *quizServiceFixture {
	f := &quizServiceFixture{
		quizzes:   new(MockQuizRepository),
		answers:   new(MockAnswerRepository),
		results:   new(MockResultRepository),
		couples:   new(MockCoupleRepository),
		publisher: new(MockResultPublisher),
		cache:     cache.NewMemoryCache(cache.WithClock(func() time.Time { return submitTime })),
	}
	f.service = NewQuizService(f.quizzes, f.answers, f.results, f.couples, f.cache, f.publisher,
		service.NewScorer(service.NewQuizIDParity(true)), time.Minute, zap.NewNop())
	f.service.now = func() time.Time { return submitTime }
	return f
}

func (f *quizServiceFixture) assertExpectations(t *testing.T) {
	f.quizzes.AssertExpectations(t)
	f.answers.AssertExpectations(t)
	f.results.AssertExpectations(t)
	f.couples.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func submitInput(values ...int) dto.SubmitAnswersInput {
	input := dto.SubmitAnswersInput{QuizID: "7", UserID: "user-a"}
	for i, v := range values {
		input.Answers = append(input.Answers, dto.AnswerInput{QuestionID: "q" + string(rune('1'+i)), AnswerValue: v})
	}
	return input
}

func TestQuizService_SubmitAnswers(t *testing.T) {
	ctx := context.Background()

	t.Run("waiting for partner", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizzes.On("GetQuiz", mock.Anything, "7").Return(testQuiz(), nil)
		f.couples.On("GetByMember", mock.Anything, "user-a").Return(testCouple, nil)
		f.answers.On("ReplaceAnswers", mock.Anything, "7", "user-a", mock.MatchedBy(func(answers []model.Answer) bool {
			if len(answers) != 3 {
				return false
			}
			for _, a := range answers {
				if a.AnsweredAt == nil || !a.AnsweredAt.Equal(submitTime) || a.CoupleID != "couple-1" || a.UserID != "user-a" {
					return false
				}
			}
			return true
		})).Return(nil)
		f.answers.On("ListByUser", mock.Anything, "7", "user-a").Return(answersOf("user-a", submitTime, 1, 2, 3), nil)
		f.answers.On("ListPartnerAnswers", mock.Anything, "7", "couple-1", "user-a").Return([]model.Answer{}, nil)
		f.quizzes.On("ListQuestions", mock.Anything, "7").Return(testQuiz().Questions, nil)

		resp, err := f.service.SubmitAnswers(ctx, submitInput(1, 2, 3))

		require.NoError(t, err)
		assert.Equal(t, dto.StatusWaitingForPartner, resp.Status)
		assert.Equal(t, "couple-1", resp.CoupleID)
		assert.Equal(t, 3, resp.AnswerCount)
		assert.Nil(t, resp.Result)
		f.results.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "PublishResultUpdated", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("both answered stores and publishes result", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizzes.On("GetQuiz", mock.Anything, "7").Return(testQuiz(), nil)
		f.couples.On("GetByMember", mock.Anything, "user-a").Return(testCouple, nil)
		f.answers.On("ReplaceAnswers", mock.Anything, "7", "user-a", mock.Anything).Return(nil)
		f.answers.On("ListByUser", mock.Anything, "7", "user-a").Return(answersOf("user-a", submitTime, 1, 2, 3), nil)
		f.answers.On("ListPartnerAnswers", mock.Anything, "7", "couple-1", "user-a").Return(answersOf("user-b", partnerTime, 1, 2, 1), nil)
		f.quizzes.On("ListQuestions", mock.Anything, "7").Return(testQuiz().Questions, nil)
		f.results.On("Upsert", mock.Anything, mock.AnythingOfType("*model.QuizResult")).Return(nil)
		f.publisher.On("PublishResultUpdated", mock.Anything, mock.AnythingOfType("*model.QuizResult")).Return(nil)

		resp, err := f.service.SubmitAnswers(ctx, submitInput(1, 2, 3))

		require.NoError(t, err)
		assert.Equal(t, dto.StatusReady, resp.Status)
		require.NotNil(t, resp.Result)
		assert.Equal(t, 67, resp.Result.Score)
		assert.Equal(t, "user-b", resp.Result.ReferenceUserID)
		assert.Equal(t, model.ReferenceSourceAnsweredAt, resp.Result.ReferenceSource)
		assert.Equal(t, 67, resp.Result.User1Percent)
		assert.Equal(t, 0, resp.Result.User2Percent)
		assert.Len(t, resp.Result.Strengths, 2)
		assert.Len(t, resp.Result.Weaknesses, 1)
		f.assertExpectations(t)
	})

	t.Run("quiz not found", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizzes.On("GetQuiz", mock.Anything, "7").Return(nil, nil)

		_, err := f.service.SubmitAnswers(ctx, submitInput(1))

		require.Error(t, err)
		assert.True(t, domainErrors.IsQuizError(err, domainErrors.ErrTypeQuizNotFound))
		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
		f.assertExpectations(t)
	})

	t.Run("unknown question", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizzes.On("GetQuiz", mock.Anything, "7").Return(testQuiz(), nil)

		input := submitInput(1)
		input.Answers = append(input.Answers, dto.AnswerInput{QuestionID: "q9", AnswerValue: 2})
		_, err := f.service.SubmitAnswers(ctx, input)

		require.Error(t, err)
		assert.True(t, domainErrors.IsQuizError(err, domainErrors.ErrTypeUnknownQuestion))
		f.answers.AssertNotCalled(t, "ReplaceAnswers", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate question", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizzes.On("GetQuiz", mock.Anything, "7").Return(testQuiz(), nil)

		input := submitInput(1)
		input.Answers = append(input.Answers, dto.AnswerInput{QuestionID: "q1", AnswerValue: 3})
		_, err := f.service.SubmitAnswers(ctx, input)

		require.Error(t, err)
		assert.True(t, domainErrors.IsQuizError(err, domainErrors.ErrTypeInvalidAnswer))
	})

	t.Run("empty submission", func(t *testing.T) {
		f := newQuizServiceFixture()

		_, err := f.service.SubmitAnswers(ctx, dto.SubmitAnswersInput{QuizID: "7", UserID: "user-a"})

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrInvalidArgument, apperrors.CodeOf(err))
		f.assertExpectations(t)
	})

	t.Run("caller without couple", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizzes.On("GetQuiz", mock.Anything, "7").Return(testQuiz(), nil)
		f.couples.On("GetByMember", mock.Anything, "user-a").Return(nil, nil)

		_, err := f.service.SubmitAnswers(ctx, submitInput(1))

		require.Error(t, err)
		assert.True(t, domainErrors.IsQuizError(err, domainErrors.ErrTypeCoupleNotFound))
		f.assertExpectations(t)
	})

	t.Run("store failure keeps its code", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizzes.On("GetQuiz", mock.Anything, "7").Return(testQuiz(), nil)
		f.couples.On("GetByMember", mock.Anything, "user-a").Return(testCouple, nil)
		f.answers.On("ReplaceAnswers", mock.Anything, "7", "user-a", mock.Anything).
			Return(domainErrors.NewStoreUnavailableError("replace answers", errors.New("connection refused")))

		_, err := f.service.SubmitAnswers(ctx, submitInput(1, 2))

		require.Error(t, err)
		assert.Equal(t, apperrors.ErrUnavailable, apperrors.CodeOf(err))
		f.assertExpectations(t)
	})

	t.Run("submission invalidates the partner-side cache entry", func(t *testing.T) {
		f := newQuizServiceFixture()
		stale := answersOf("user-a", partnerTime, 3, 3, 3)
		require.NoError(t, f.cache.Set(ctx, repository.PartnerAnswersKey("7", "couple-1", "user-b"), stale, time.Hour))
		require.NoError(t, f.cache.Set(ctx, repository.UserAnswersKey("7", "user-a"), stale, time.Hour))

		f.quizzes.On("GetQuiz", mock.Anything, "7").Return(testQuiz(), nil)
		f.couples.On("GetByMember", mock.Anything, "user-a").Return(testCouple, nil)
		f.answers.On("ReplaceAnswers", mock.Anything, "7", "user-a", mock.Anything).Return(nil)
		f.answers.On("ListByUser", mock.Anything, "7", "user-a").Return(answersOf("user-a", submitTime, 1), nil)
		f.answers.On("ListPartnerAnswers", mock.Anything, "7", "couple-1", "user-a").Return([]model.Answer{}, nil)
		f.quizzes.On("ListQuestions", mock.Anything, "7").Return(testQuiz().Questions, nil)

		_, err := f.service.SubmitAnswers(ctx, submitInput(1))
		require.NoError(t, err)

		_, ok, err := f.cache.Get(ctx, repository.PartnerAnswersKey("7", "couple-1", "user-b"))
		require.NoError(t, err)
		assert.False(t, ok)

		cached, ok, err := f.cache.Get(ctx, repository.UserAnswersKey("7", "user-a"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 1, cached[0].AnswerValue)
	})
}

func TestQuizService_CalculateResult(t *testing.T) {
	ctx := context.Background()

	t.Run("second calculation reads answers from cache", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.couples.On("GetByID", mock.Anything, "couple-1").Return(testCouple, nil)
		f.answers.On("ListByUser", mock.Anything, "7", "user-a").Return(answersOf("user-a", submitTime, 2, 2), nil).Once()
		f.answers.On("ListPartnerAnswers", mock.Anything, "7", "couple-1", "user-a").Return(answersOf("user-b", submitTime, 2, 2), nil).Once()
		f.quizzes.On("ListQuestions", mock.Anything, "7").Return(testQuiz().Questions, nil)
		f.results.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("PublishResultUpdated", mock.Anything, mock.Anything).Return(nil)

		first, err := f.service.CalculateResult(ctx, "7", "couple-1")
		require.NoError(t, err)
		second, err := f.service.CalculateResult(ctx, "7", "couple-1")
		require.NoError(t, err)

		assert.Equal(t, 100, first.Result.Score)
		assert.Equal(t, first.Result.Score, second.Result.Score)
		// equal answer times: quiz 7 is odd, so participant 2 is the reference
		assert.Equal(t, "user-b", first.Result.ReferenceUserID)
		assert.Equal(t, model.ReferenceSourceTieBreak, first.Result.ReferenceSource)
		f.answers.AssertNumberOfCalls(t, "ListByUser", 1)
		f.answers.AssertNumberOfCalls(t, "ListPartnerAnswers", 1)
		f.results.AssertNumberOfCalls(t, "Upsert", 2)
	})

	t.Run("publish failure does not fail the calculation", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.couples.On("GetByID", mock.Anything, "couple-1").Return(testCouple, nil)
		f.answers.On("ListByUser", mock.Anything, "7", "user-a").Return(answersOf("user-a", submitTime, 1), nil)
		f.answers.On("ListPartnerAnswers", mock.Anything, "7", "couple-1", "user-a").Return(answersOf("user-b", partnerTime, 3), nil)
		f.quizzes.On("ListQuestions", mock.Anything, "7").Return(testQuiz().Questions, nil)
		f.results.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		f.publisher.On("PublishResultUpdated", mock.Anything, mock.Anything).Return(errors.New("redis down"))

		calc, err := f.service.CalculateResult(ctx, "7", "couple-1")

		require.NoError(t, err)
		assert.Equal(t, dto.StatusReady, calc.Status)
		assert.Equal(t, 0, calc.Result.Score)
		f.assertExpectations(t)
	})

	t.Run("upsert failure is returned", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.couples.On("GetByID", mock.Anything, "couple-1").Return(testCouple, nil)
		f.answers.On("ListByUser", mock.Anything, "7", "user-a").Return(answersOf("user-a", submitTime, 1), nil)
		f.answers.On("ListPartnerAnswers", mock.Anything, "7", "couple-1", "user-a").Return(answersOf("user-b", partnerTime, 1), nil)
		f.quizzes.On("ListQuestions", mock.Anything, "7").Return(testQuiz().Questions, nil)
		f.results.On("Upsert", mock.Anything, mock.Anything).
			Return(domainErrors.NewStoreFailureError("upsert result", errors.New("constraint")))

		_, err := f.service.CalculateResult(ctx, "7", "couple-1")

		require.Error(t, err)
		assert.True(t, domainErrors.IsQuizError(err, domainErrors.ErrTypeStoreFailure))
		f.publisher.AssertNotCalled(t, "PublishResultUpdated", mock.Anything, mock.Anything)
	})

	t.Run("unknown couple", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.couples.On("GetByID", mock.Anything, "couple-x").Return(nil, nil)

		_, err := f.service.CalculateResult(ctx, "7", "couple-x")

		require.Error(t, err)
		assert.True(t, domainErrors.IsQuizError(err, domainErrors.ErrTypeCoupleNotFound))
	})
}

func TestQuizService_RefreshResult(t *testing.T) {
	ctx := context.Background()
	f := newQuizServiceFixture()
	stale := answersOf("user-b", partnerTime, 3, 3, 3)
	require.NoError(t, f.cache.Set(ctx, repository.PartnerAnswersKey("7", "couple-1", "user-a"), stale, time.Hour))

	f.quizzes.On("GetQuiz", mock.Anything, "7").Return(testQuiz(), nil)
	f.couples.On("GetByMember", mock.Anything, "user-b").Return(testCouple, nil)
	f.answers.On("ListByUser", mock.Anything, "7", "user-a").Return(answersOf("user-a", submitTime, 1, 1, 1), nil)
	f.answers.On("ListPartnerAnswers", mock.Anything, "7", "couple-1", "user-a").Return(answersOf("user-b", partnerTime, 1, 1, 1), nil)
	f.quizzes.On("ListQuestions", mock.Anything, "7").Return(testQuiz().Questions, nil)
	f.results.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishResultUpdated", mock.Anything, mock.Anything).Return(nil)

	calc, err := f.service.RefreshResult(ctx, "7", "user-b")

	require.NoError(t, err)
	assert.Equal(t, 100, calc.Result.Score)
	f.assertExpectations(t)
}

func TestQuizService_GetResult(t *testing.T) {
	ctx := context.Background()

	t.Run("stored result", func(t *testing.T) {
		f := newQuizServiceFixture()
		stored := &model.QuizResult{QuizID: "7", CoupleID: "couple-1", Score: 80}
		f.couples.On("GetByMember", mock.Anything, "user-a").Return(testCouple, nil)
		f.results.On("Get", mock.Anything, "7", "couple-1").Return(stored, nil)

		result, err := f.service.GetResult(ctx, "7", "user-a")

		require.NoError(t, err)
		assert.Equal(t, stored, result)
	})

	t.Run("no result yet", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.couples.On("GetByMember", mock.Anything, "user-a").Return(testCouple, nil)
		f.results.On("Get", mock.Anything, "7", "couple-1").Return(nil, nil)

		_, err := f.service.GetResult(ctx, "7", "user-a")

		require.Error(t, err)
		assert.True(t, domainErrors.IsQuizError(err, domainErrors.ErrTypeResultNotFound))
		assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
	})
}

func TestQuizService_GetStatus(t *testing.T) {
	ctx := context.Background()
	f := newQuizServiceFixture()
	f.quizzes.On("GetQuiz", mock.Anything, "7").Return(testQuiz(), nil)
	f.couples.On("GetByMember", mock.Anything, "user-b").Return(testCouple, nil)
	f.answers.On("ListByUser", mock.Anything, "7", "user-b").Return(answersOf("user-b", partnerTime, 1, 2), nil)
	f.answers.On("ListPartnerAnswers", mock.Anything, "7", "couple-1", "user-b").Return([]model.Answer{}, nil)
	f.results.On("Get", mock.Anything, "7", "couple-1").Return(nil, nil)

	status, err := f.service.GetStatus(ctx, "7", "user-b")

	require.NoError(t, err)
	assert.True(t, status.UserAnswered)
	assert.False(t, status.PartnerAnswered)
	assert.False(t, status.ResultReady)
	assert.Nil(t, status.Result)
	f.assertExpectations(t)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]model.Answer, bool, error) {
	return nil, false, errors.New("cache offline")
}

func (failingCache) Set(context.Context, string, []model.Answer, time.Duration) error {
	return errors.New("cache offline")
}

func (failingCache) Invalidate(context.Context, ...string) error {
	return errors.New("cache offline")
}

func TestQuizService_CacheFailuresFallBackToStore(t *testing.T) {
	ctx := context.Background()
	f := newQuizServiceFixture()
	f.service.cache = failingCache{}

	f.couples.On("GetByID", mock.Anything, "couple-1").Return(testCouple, nil)
	f.answers.On("ListByUser", mock.Anything, "7", "user-a").Return(answersOf("user-a", submitTime, 1, 2, 3), nil)
	f.answers.On("ListPartnerAnswers", mock.Anything, "7", "couple-1", "user-a").Return(answersOf("user-b", partnerTime, 1, 2, 1), nil)
	f.quizzes.On("ListQuestions", mock.Anything, "7").Return(testQuiz().Questions, nil)
	f.results.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishResultUpdated", mock.Anything, mock.Anything).Return(nil)

	calc, err := f.service.CalculateResult(ctx, "7", "couple-1")

	require.NoError(t, err)
	assert.Equal(t, 67, calc.Result.Score)
	f.assertExpectations(t)
}

func TestQuizService_ListQuizzes(t *testing.T) {
	f := newQuizServiceFixture()
	f.quizzes.On("ListQuizzes", mock.Anything).Return([]model.Quiz{*testQuiz()}, nil)

	resp, err := f.service.ListQuizzes(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Quizzes, 1)
	assert.Equal(t, "Weekend plans", resp.Quizzes[0].Title)
}
