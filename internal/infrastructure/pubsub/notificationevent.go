package pubsub

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/shared/goroutine"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

const notificationChannel = "procureflow:notifications"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope tags each event with the publishing instance.
type envelope struct {
	InstanceID string             `json:"instance_id"`
	Event      notification.Event `json:"event"`
}

type NotificationPublisher interface {
	PublishNotificationEvent(ctx context.Context, event notification.Event) error
}

type NotificationSubscriber interface {
	// SubscribeNotificationEvents blocks until ctx is canceled.
	SubscribeNotificationEvents(ctx context.Context, handler func(event notification.Event)) error
}

type NotificationBus interface {
	NotificationPublisher
	NotificationSubscriber
}

func EncodeEvent(instanceID string, event notification.Event) ([]byte, error) {
	return json.Marshal(envelope{InstanceID: instanceID, Event: event})
}

func DecodeEvent(data []byte) (string, notification.Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", notification.Event{}, err
	}
	return env.InstanceID, env.Event, nil
}

// RedisNotificationBus fans notification events out to every server
// instance, including the publishing one.
type RedisNotificationBus struct {
	client     *redis.Client
	logger     logger.Interface
	instanceID string
}

func NewRedisNotificationBus(client *redis.Client, log logger.Interface) *RedisNotificationBus {
	return &RedisNotificationBus{
		client:     client,
		logger:     log,
		instanceID: uuid.NewString(),
	}
}

func (b *RedisNotificationBus) InstanceID() string {
	return b.instanceID
}

func (b *RedisNotificationBus) PublishNotificationEvent(ctx context.Context, event notification.Event) error {
	data, err := EncodeEvent(b.instanceID, event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	if err := b.client.Publish(ctx, notificationChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish notification event",
			"user_id", event.UserID,
			"type", event.Type,
			"error", err,
		)
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	b.logger.Debugw("notification event published",
		"user_id", event.UserID,
		"type", event.Type,
	)
	return nil
}

func (b *RedisNotificationBus) SubscribeNotificationEvents(ctx context.Context, handler func(event notification.Event)) error {
	return b.subscribeWithReconnect(ctx, notificationChannel, func(payload string) {
		_, event, err := DecodeEvent([]byte(payload))
		if err != nil {
			b.logger.Warnw("failed to unmarshal notification event",
				"payload", payload,
				"error", err,
			)
			return
		}
		handler(event)
	})
}

// subscribeWithReconnect retries with exponential backoff from 1s to 30s.
func (b *RedisNotificationBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("notification subscription disconnected, reconnecting",
			"channel", channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisNotificationBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	ps := b.client.Subscribe(ctx, channel)
	defer ps.Close()

	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to notification channel", "channel", channel)

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("notification subscriber stopped",
				"channel", channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("notification channel closed", "channel", channel)
				return nil
			}
			goroutine.SafeGo(b.logger, "notification-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}

// LocalNotificationBus delivers events inside the process. It is used when
// Redis is disabled and in tests.
type LocalNotificationBus struct {
	mu       sync.RWMutex
	handlers map[int]func(event notification.Event)
	nextID   int
	logger   logger.Interface
}

func NewLocalNotificationBus(log logger.Interface) *LocalNotificationBus {
	return &LocalNotificationBus{
		handlers: make(map[int]func(event notification.Event)),
		logger:   log,
	}
}

func (b *LocalNotificationBus) PublishNotificationEvent(_ context.Context, event notification.Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, h := range b.handlers {
		h(event)
	}
	return nil
}

func (b *LocalNotificationBus) SubscribeNotificationEvents(ctx context.Context, handler func(event notification.Event)) error {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	b.logger.Infow("subscribed to in-process notification bus")

	<-ctx.Done()

	b.mu.Lock()
	delete(b.handlers, id)
	b.mu.Unlock()
	return ctx.Err()
}

// MarshalStreamEvent is the frame pushed to SSE and websocket subscribers.
func MarshalStreamEvent(event notification.Event) ([]byte, error) {
	return json.Marshal(event)
}
