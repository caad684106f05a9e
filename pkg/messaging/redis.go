// Package messaging은 Redis pub/sub 위에 얇은 발행/구독 클라이언트를 제공합니다.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient Redis 발행/구독 클라이언트 인터페이스
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan Message, error)
	Close() error
}

// Message 구독으로 받은 메시지
type Message struct {
	Channel    string
	Payload    []byte
	ReceivedAt time.Time
}

type redisClient struct {
	client *redis.Client
}

// NewRedisClient는 주어진 Redis 클라이언트를 감쌉니다. 연결 확인은 호출하는 쪽에서 합니다.
func NewRedisClient(client *redis.Client) RedisClient {
	return &redisClient{client: client}
}

// Dial은 Redis에 접속하고 PING으로 연결을 확인합니다.
func Dial(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}
	return client, nil
}

// Publish는 message를 JSON으로 직렬화해 채널에 발행합니다.
func (r *redisClient) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("메시지 직렬화 실패: %w", err)
	}
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("메시지 발행 실패 (%s): %w", channel, err)
	}
	return nil
}

// Subscribe는 채널을 구독하고, ctx가 끝나면 닫히는 메시지 채널을 반환합니다.
func (r *redisClient) Subscribe(ctx context.Context, channel string) (<-chan Message, error) {
	pubsub := r.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("채널 구독 실패 (%s): %w", channel, err)
	}

	out := make(chan Message)
	go func() {
		defer close(out)
		defer pubsub.Close()

		in := pubsub.Channel()
		for {
			select {
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- Message{Channel: msg.Channel, Payload: []byte(msg.Payload), ReceivedAt: time.Now()}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Close는 내부 Redis 클라이언트를 닫습니다.
func (r *redisClient) Close() error {
	return r.client.Close()
}
