package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/dto"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

const (
	// DefaultReconcileInterval matches the cadence clients used to poll for a partner's answers
	DefaultReconcileInterval = 10 * time.Second
	// reconcileOverlap re-reads a little of the previous window so answers committed
	// during a run are not skipped
	reconcileOverlap = 2 * time.Second
)

// ResultCalculator recalculates one couple's result for one quiz
type ResultCalculator interface {
	CalculateResult(ctx context.Context, quizID, coupleID string) (*dto.CalculationResult, error)
}

// ReconcileReport summarizes a single reconciliation pass
type ReconcileReport struct {
	Pairs   int
	Ready   int
	Waiting int
	Failed  int
}

// ResultReconciler periodically recalculates results for couples with new answers
type ResultReconciler struct {
	answerRepo repository.AnswerRepository
	calculator ResultCalculator
	interval   time.Duration
	scheduler  *gocron.Scheduler
	logger     *zap.Logger

	mu      sync.Mutex
	lastRun time.Time
	now     func() time.Time
}

// NewResultReconciler creates a reconciler that runs every interval once started
func NewResultReconciler(
	answerRepo repository.AnswerRepository,
	calculator ResultCalculator,
	interval time.Duration,
	logger *zap.Logger,
) *ResultReconciler {
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}
	return &ResultReconciler{
		answerRepo: answerRepo,
		calculator: calculator,
		interval:   interval,
		scheduler:  gocron.NewScheduler(time.UTC),
		logger:     logger,
		now:        time.Now,
	}
}

// Start schedules the reconciliation job. Runs never overlap.
func (r *ResultReconciler) Start(ctx context.Context) error {
	r.scheduler.SingletonModeAll()

	_, err := r.scheduler.Every(r.interval).Do(func() {
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.Warn("ResultReconciler: Run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule result reconciliation: %w", err)
	}

	r.scheduler.StartAsync()
	r.logger.Info("ResultReconciler: Started", zap.Duration("interval", r.interval))
	return nil
}

// Stop halts the schedule; a run in progress is allowed to finish.
func (r *ResultReconciler) Stop() {
	r.scheduler.Stop()
	r.logger.Info("ResultReconciler: Stopped")
}

// RunOnce recalculates every (quiz, couple) pair with answers since the previous run.
// A failure for one pair is logged and does not stop the others.
func (r *ResultReconciler) RunOnce(ctx context.Context) (*ReconcileReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := r.now().UTC()
	since := r.lastRun
	if since.IsZero() {
		since = started.Add(-r.interval)
	}
	since = since.Add(-reconcileOverlap)

	pairs, err := r.answerRepo.ListRecentPairs(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent answer pairs: %w", err)
	}

	report := &ReconcileReport{Pairs: len(pairs)}
	for _, pair := range pairs {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		calc, err := r.calculator.CalculateResult(ctx, pair.QuizID, pair.CoupleID)
		if err != nil {
			report.Failed++
			r.logger.Warn("ResultReconciler: Recalculation failed",
				zap.String("quiz_id", pair.QuizID),
				zap.String("couple_id", pair.CoupleID),
				zap.Error(err))
			continue
		}
		if calc.Status == dto.StatusReady {
			report.Ready++
		} else {
			report.Waiting++
		}
	}
	r.lastRun = started

	if report.Pairs > 0 {
		r.logger.Info("ResultReconciler: Pass completed",
			zap.Time("since", since),
			zap.Int("pairs", report.Pairs),
			zap.Int("ready", report.Ready),
			zap.Int("waiting", report.Waiting),
			zap.Int("failed", report.Failed))
	}
	return report, nil
}
