package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/dto"
	domainErrors "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/errors"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/service"
)

// DefaultAnswerTTL is used when no answer cache TTL is configured
const DefaultAnswerTTL = 5 * time.Minute

// QuizService handles answering quizzes and computing couple results
type QuizService struct {
	quizRepo   repository.QuizRepository
	answerRepo repository.AnswerRepository
	resultRepo repository.ResultRepository
	coupleRepo repository.CoupleRepository
	cache      repository.AnswerCache
	publisher  repository.ResultPublisher
	scorer     *service.Scorer
	answerTTL  time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(
	quizRepo repository.QuizRepository,
	answerRepo repository.AnswerRepository,
	resultRepo repository.ResultRepository,
	coupleRepo repository.CoupleRepository,
	cache repository.AnswerCache,
	publisher repository.ResultPublisher,
	scorer *service.Scorer,
	answerTTL time.Duration,
	logger *zap.Logger,
) *QuizService {
	if answerTTL <= 0 {
		answerTTL = DefaultAnswerTTL
	}
	if scorer == nil {
		scorer = service.NewScorer(nil)
	}
	return &QuizService{
		quizRepo:   quizRepo,
		answerRepo: answerRepo,
		resultRepo: resultRepo,
		coupleRepo: coupleRepo,
		cache:      cache,
		publisher:  publisher,
		scorer:     scorer,
		answerTTL:  answerTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// ListQuizzes returns the catalog without questions
func (s *QuizService) ListQuizzes(ctx context.Context) (*dto.QuizListResponse, error) {
	quizzes, err := s.quizRepo.ListQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	resp := &dto.QuizListResponse{Quizzes: make([]dto.QuizSummary, 0, len(quizzes))}
	for _, q := range quizzes {
		resp.Quizzes = append(resp.Quizzes, dto.QuizSummary{
			ID:          q.ID,
			Title:       q.Title,
			Category:    q.Category,
			Description: q.Description,
		})
	}
	return resp, nil
}

// GetQuiz returns a quiz with its questions in display order
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (*model.Quiz, error) {
	quiz, err := s.quizRepo.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil {
		return nil, domainErrors.NewQuizNotFoundError(quizID)
	}
	return quiz, nil
}

// SubmitAnswers replaces the caller's answers to a quiz and tries to compute the couple result
func (s *QuizService) SubmitAnswers(ctx context.Context, input dto.SubmitAnswersInput) (*dto.SubmitAnswersResponse, error) {
	if len(input.Answers) == 0 {
		return nil, domainErrors.NewInvalidAnswerError(input.QuizID, "at least one answer is required")
	}

	quiz, err := s.GetQuiz(ctx, input.QuizID)
	if err != nil {
		return nil, err
	}
	if err := validateQuestions(quiz, input.Answers); err != nil {
		return nil, err
	}

	couple, err := s.resolveCouple(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	answeredAt := s.now().UTC()
	answers := make([]model.Answer, 0, len(input.Answers))
	for _, a := range input.Answers {
		stamp := answeredAt
		answers = append(answers, model.Answer{
			QuizID:      quiz.ID,
			QuestionID:  a.QuestionID,
			UserID:      input.UserID,
			CoupleID:    couple.ID,
			AnswerValue: a.AnswerValue,
			AnsweredAt:  &stamp,
		})
	}

	if err := s.answerRepo.ReplaceAnswers(ctx, quiz.ID, input.UserID, answers); err != nil {
		s.logger.Error("QuizService: Failed to store answers",
			zap.String("quiz_id", quiz.ID),
			zap.String("user_id", input.UserID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to store answers: %w", err)
	}

	// user's own entry, and the partner-side entry that holds this user's answers
	s.invalidate(ctx,
		repository.UserAnswersKey(quiz.ID, input.UserID),
		repository.PartnerAnswersKey(quiz.ID, couple.ID, couple.PartnerOf(input.UserID)),
	)

	s.logger.Info("QuizService: Answers stored",
		zap.String("quiz_id", quiz.ID),
		zap.String("couple_id", couple.ID),
		zap.String("user_id", input.UserID),
		zap.Int("answer_count", len(answers)))

	calc, err := s.calculate(ctx, quiz.ID, couple)
	if err != nil {
		return nil, err
	}

	return &dto.SubmitAnswersResponse{
		QuizID:      quiz.ID,
		CoupleID:    couple.ID,
		AnswerCount: len(answers),
		Status:      calc.Status,
		Result:      calc.Result,
	}, nil
}

// CalculateResult scores the couple's answers to a quiz and stores the result.
// When a partner has not answered yet nothing is written and no error is returned.
func (s *QuizService) CalculateResult(ctx context.Context, quizID, coupleID string) (*dto.CalculationResult, error) {
	couple, err := s.coupleRepo.GetByID(ctx, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load couple: %w", err)
	}
	if couple == nil {
		return nil, &domainErrors.QuizError{
			Type:     domainErrors.ErrTypeCoupleNotFound,
			Message:  "couple does not exist",
			QuizID:   quizID,
			CoupleID: coupleID,
		}
	}
	return s.calculate(ctx, quizID, couple)
}

// RefreshResult drops both partners' cached answers and recalculates
func (s *QuizService) RefreshResult(ctx context.Context, quizID, userID string) (*dto.CalculationResult, error) {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	couple, err := s.resolveCouple(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx,
		repository.UserAnswersKey(quizID, couple.User1ID),
		repository.UserAnswersKey(quizID, couple.User2ID),
		repository.PartnerAnswersKey(quizID, couple.ID, couple.User1ID),
		repository.PartnerAnswersKey(quizID, couple.ID, couple.User2ID),
	)

	return s.calculate(ctx, quizID, couple)
}

// GetResult returns the stored result of the caller's couple for a quiz
func (s *QuizService) GetResult(ctx context.Context, quizID, userID string) (*model.QuizResult, error) {
	couple, err := s.resolveCouple(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.resultRepo.Get(ctx, quizID, couple.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	if result == nil {
		return nil, domainErrors.NewResultNotFoundError(quizID, couple.ID)
	}
	return result, nil
}

// GetStatus reports who has answered and whether a result exists yet
func (s *QuizService) GetStatus(ctx context.Context, quizID, userID string) (*dto.QuizStatusResponse, error) {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}
	couple, err := s.resolveCouple(ctx, userID)
	if err != nil {
		return nil, err
	}

	mine, err := s.userAnswers(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}
	partner, err := s.partnerAnswers(ctx, quizID, couple.ID, userID)
	if err != nil {
		return nil, err
	}
	result, err := s.resultRepo.Get(ctx, quizID, couple.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	return &dto.QuizStatusResponse{
		QuizID:          quizID,
		CoupleID:        couple.ID,
		UserAnswered:    len(mine) > 0,
		PartnerAnswered: len(partner) > 0,
		ResultReady:     result != nil,
		Result:          result,
	}, nil
}

func (s *QuizService) calculate(ctx context.Context, quizID string, couple *model.Couple) (*dto.CalculationResult, error) {
	first, err := s.userAnswers(ctx, quizID, couple.User1ID)
	if err != nil {
		return nil, err
	}
	second, err := s.partnerAnswers(ctx, quizID, couple.ID, couple.User1ID)
	if err != nil {
		return nil, err
	}
	questions, err := s.quizRepo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	outcome, err := s.scorer.Score(quizID,
		service.Participant{UserID: couple.User1ID, Answers: first},
		service.Participant{UserID: couple.User2ID, Answers: second},
		questions,
	)
	if errors.Is(err, service.ErrAnswersIncomplete) {
		s.logger.Debug("QuizService: Waiting for partner",
			zap.String("quiz_id", quizID),
			zap.String("couple_id", couple.ID),
			zap.Int("user1_answers", len(first)),
			zap.Int("user2_answers", len(second)))
		return &dto.CalculationResult{Status: dto.StatusWaitingForPartner}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to score answers: %w", err)
	}

	result := outcome.ToResult(quizID, couple.ID)
	if err := s.resultRepo.Upsert(ctx, result); err != nil {
		s.logger.Error("QuizService: Failed to store result",
			zap.String("quiz_id", quizID),
			zap.String("couple_id", couple.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to store result: %w", err)
	}

	if err := s.publisher.PublishResultUpdated(ctx, result); err != nil {
		s.logger.Warn("QuizService: Failed to publish result event",
			zap.String("quiz_id", quizID),
			zap.String("couple_id", couple.ID),
			zap.Error(err))
	}

	s.logger.Info("QuizService: Result calculated",
		zap.String("quiz_id", quizID),
		zap.String("couple_id", couple.ID),
		zap.Int("score", result.Score),
		zap.Int("question_count", result.QuestionCount),
		zap.String("reference_user_id", result.ReferenceUserID),
		zap.String("reference_source", result.ReferenceSource))

	return &dto.CalculationResult{Status: dto.StatusReady, Result: result}, nil
}

func (s *QuizService) resolveCouple(ctx context.Context, userID string) (*model.Couple, error) {
	couple, err := s.coupleRepo.GetByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve couple: %w", err)
	}
	if couple == nil {
		return nil, domainErrors.NewCoupleNotFoundError(userID)
	}
	if !couple.Has(userID) {
		return nil, domainErrors.NewNotCoupleMemberError(userID, couple.ID)
	}
	return couple, nil
}

func (s *QuizService) userAnswers(ctx context.Context, quizID, userID string) ([]model.Answer, error) {
	return s.cachedAnswers(ctx, repository.UserAnswersKey(quizID, userID), func(ctx context.Context) ([]model.Answer, error) {
		return s.answerRepo.ListByUser(ctx, quizID, userID)
	})
}

func (s *QuizService) partnerAnswers(ctx context.Context, quizID, coupleID, excludingUserID string) ([]model.Answer, error) {
	return s.cachedAnswers(ctx, repository.PartnerAnswersKey(quizID, coupleID, excludingUserID), func(ctx context.Context) ([]model.Answer, error) {
		return s.answerRepo.ListPartnerAnswers(ctx, quizID, coupleID, excludingUserID)
	})
}

// cachedAnswers reads through the answer cache. Cache failures are logged and
// fall back to the store. Empty answer sets are not cached so a partner's
// first submission is visible on the next read.
func (s *QuizService) cachedAnswers(
	ctx context.Context,
	key string,
	load func(context.Context) ([]model.Answer, error),
) ([]model.Answer, error) {
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("QuizService: Answer cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	answers, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	if len(answers) == 0 {
		return answers, nil
	}
	if err := s.cache.Set(ctx, key, answers, s.answerTTL); err != nil {
		s.logger.Warn("QuizService: Answer cache write failed", zap.String("key", key), zap.Error(err))
	}
	return answers, nil
}

func (s *QuizService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.Warn("QuizService: Answer cache invalidation failed",
			zap.Strings("keys", keys),
			zap.Error(err))
	}
}

func validateQuestions(quiz *model.Quiz, answers []dto.AnswerInput) error {
	known := make(map[string]struct{}, len(quiz.Questions))
	for _, q := range quiz.Questions {
		known[q.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(answers))
	for _, a := range answers {
		if _, ok := known[a.QuestionID]; !ok {
			return domainErrors.NewUnknownQuestionError(quiz.ID, a.QuestionID)
		}
		if _, dup := seen[a.QuestionID]; dup {
			return domainErrors.NewInvalidAnswerError(quiz.ID, "question "+a.QuestionID+" answered more than once")
		}
		seen[a.QuestionID] = struct{}{}
	}
	return nil
}
