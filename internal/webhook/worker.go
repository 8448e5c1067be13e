package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/municipal_incidents/internal/config"
	"github.com/shenikar/municipal_incidents/internal/models"
	"github.com/sirupsen/logrus"
)

const signatureHeader = "X-Webhook-Signature"

// WebhookWorker забирает события из очереди и отправляет их во внешнюю систему
type WebhookWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	httpClient  *http.Client
	url         string
	secret      string
	maxRetries  int
	baseDelay   time.Duration
	popTimeout  time.Duration
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	maxRetries := cfg.WebhookMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &WebhookWorker{
		redisClient: redisClient,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		url:        cfg.WebhookURL,
		secret:     cfg.WebhookSecret,
		maxRetries: maxRetries,
		baseDelay:  cfg.WebhookBaseDelay,
		popTimeout: 5 * time.Second,
	}
}

// Start запускает горутину обработки очереди; завершается по отмене ctx
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping webhook worker.")
				return
			default:
			}

			result, err := w.redisClient.BRPop(ctx, w.popTimeout, webhookQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop state change event from Redis")
				sleepCtx(ctx, w.baseDelay)
				continue
			}

			// result[0] - ключ, result[1] - значение
			payload := result[1]
			var event models.StateChangeEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				w.logger.WithError(err).Error("Failed to unmarshal state change event from Redis")
				continue
			}

			w.deliver(ctx, event, payload)
		}
	}()
}

// deliver отправляет событие с повторами и экспоненциальной задержкой
func (w *WebhookWorker) deliver(ctx context.Context, event models.StateChangeEvent, rawPayload string) bool {
	log := w.logger.WithFields(logrus.Fields{
		"incident_id": event.IncidentID,
		"new_state":   event.NewState,
	})

	if w.url == "" {
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return false
	}

	delay := w.baseDelay
	for i := 0; i < w.maxRetries; i++ {
		status, err := w.send(ctx, rawPayload)
		if err == nil && status >= 200 && status < 300 {
			log.Info("Webhook delivered successfully.")
			return true
		}

		left := w.maxRetries - 1 - i
		if err != nil {
			log.WithError(err).Warnf("Failed to send webhook. Retrying in %v. Retries left: %d", delay, left)
		} else {
			log.Warnf("Webhook delivery failed with status code %d. Retrying in %v. Retries left: %d", status, delay, left)
		}
		if left == 0 || !sleepCtx(ctx, delay) {
			break
		}
		delay *= 2
	}

	log.Errorf("Failed to deliver webhook after %d attempts.", w.maxRetries)
	return false
}

func (w *WebhookWorker) send(ctx context.Context, rawPayload string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewBufferString(rawPayload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if w.secret != "" {
		req.Header.Set(signatureHeader, generateHMACSHA256(rawPayload, w.secret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// sleepCtx ждет d или отмены ctx; false, если ctx отменен
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
