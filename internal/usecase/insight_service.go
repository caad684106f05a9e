package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domainErrors "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/errors"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/service"
)

// InsightService aggregates stored quiz results into couple and personal views
type InsightService struct {
	quizRepo   repository.QuizRepository
	resultRepo repository.ResultRepository
	coupleRepo repository.CoupleRepository
	logger     *zap.Logger
}

// NewInsightService creates a new insight service
func NewInsightService(
	quizRepo repository.QuizRepository,
	resultRepo repository.ResultRepository,
	coupleRepo repository.CoupleRepository,
	logger *zap.Logger,
) *InsightService {
	return &InsightService{
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		coupleRepo: coupleRepo,
		logger:     logger,
	}
}

// CoupleInsights returns the aggregated view for the caller's couple
func (s *InsightService) CoupleInsights(ctx context.Context, userID string) (*service.CoupleInsights, error) {
	couple, results, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string)
	quizzes, err := s.quizRepo.ListQuizzes(ctx)
	if err != nil {
		// titles are cosmetic; areas fall back to quiz ids
		s.logger.Warn("InsightService: Failed to load quiz titles",
			zap.String("couple_id", couple.ID),
			zap.Error(err))
	}
	for _, q := range quizzes {
		titles[q.ID] = q.Title
	}

	insights := service.BuildCoupleInsights(couple, results, titles)

	s.logger.Debug("InsightService: Couple insights built",
		zap.String("couple_id", couple.ID),
		zap.Int("quiz_count", insights.QuizCount),
		zap.Int("overall_compatibility", insights.OverallCompatibility))

	return &insights, nil
}

// PersonalInsights returns the caller's personal compatibility
func (s *InsightService) PersonalInsights(ctx context.Context, userID string) (*service.PersonalCompatibility, error) {
	_, results, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	personal := service.Personal(userID, results)
	return &personal, nil
}

func (s *InsightService) load(ctx context.Context, userID string) (*model.Couple, []model.QuizResult, error) {
	couple, err := s.coupleRepo.GetByMember(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve couple: %w", err)
	}
	if couple == nil {
		return nil, nil, domainErrors.NewCoupleNotFoundError(userID)
	}

	results, err := s.resultRepo.ListByCouple(ctx, couple.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list results: %w", err)
	}
	return couple, results, nil
}
