package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/municipal_incidents/internal/models"
)

const (
	webhookQueueKey = "incident_state_events"
)

// RedisWebhookPublisher ставит события смены этапа в очередь Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish кладет событие в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event models.StateChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal state change event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish state change event to Redis: %w", err)
	}
	return nil
}
