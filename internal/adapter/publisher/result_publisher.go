// Package publisher sends quiz result events to subscribers.
package publisher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
	"github.com/AREOPAGO7/ZOOJ-sub001/pkg/messaging"
)

// EventResultUpdated is the event type carried by every message on the result channel.
const EventResultUpdated = "quiz_result.updated"

// ResultUpdatedEvent is the JSON payload published on the result channel.
type ResultUpdatedEvent struct {
	Type         string    `json:"type"`
	QuizID       string    `json:"quiz_id"`
	CoupleID     string    `json:"couple_id"`
	Score        int       `json:"score"`
	User1ID      string    `json:"user1_id"`
	User2ID      string    `json:"user2_id"`
	User1Percent int       `json:"user1_percent"`
	User2Percent int       `json:"user2_percent"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type redisResultPublisher struct {
	client  messaging.RedisClient
	channel string
	logger  *zap.Logger
}

// NewRedisResultPublisher publishes result events on channel
func NewRedisResultPublisher(client messaging.RedisClient, channel string, logger *zap.Logger) domainRepo.ResultPublisher {
	return &redisResultPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

func (p *redisResultPublisher) PublishResultUpdated(ctx context.Context, result *model.QuizResult) error {
	event := ResultUpdatedEvent{
		Type:         EventResultUpdated,
		QuizID:       result.QuizID,
		CoupleID:     result.CoupleID,
		Score:        result.Score,
		User1ID:      result.User1ID,
		User2ID:      result.User2ID,
		User1Percent: result.User1Percent,
		User2Percent: result.User2Percent,
		UpdatedAt:    result.UpdatedAt,
	}

	if err := p.client.Publish(ctx, p.channel, event); err != nil {
		p.logger.Warn("Failed to publish result event",
			zap.String("channel", p.channel),
			zap.String("quiz_id", result.QuizID),
			zap.String("couple_id", result.CoupleID),
			zap.Error(err))
		return err
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher is used when Redis is disabled.
func NewNoopPublisher() domainRepo.ResultPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishResultUpdated(context.Context, *model.QuizResult) error {
	return nil
}
