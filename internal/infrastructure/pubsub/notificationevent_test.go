package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

func TestEncodeDecodeEvent(t *testing.T) {
	ticketID := uint(9)
	n := notification.ReconstructNotification(3, 7, "Ticket shared with you", "/tickets/9", &ticketID, false,
		time.UnixMilli(1700000000000).UTC(), time.UnixMilli(1700000000000).UTC())
	event := notification.NewEvent(notification.EventCreated, n, time.UnixMilli(1700000000500).UTC())

	data, err := EncodeEvent("instance-a", event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"instance_id":"instance-a"`)
	assert.Contains(t, string(data), `"type":"created"`)

	instance, decoded, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, "instance-a", instance)
	assert.Equal(t, uint(7), decoded.UserID)
	require.NotNil(t, decoded.Notification)
	assert.Equal(t, int64(1700000000000), decoded.Notification.CreatedAt)
	assert.Equal(t, ticketID, *decoded.Notification.TicketID)
}

func TestDecodeEvent_Invalid(t *testing.T) {
	_, _, err := DecodeEvent([]byte("{not json"))
	assert.Error(t, err)
}

func TestLocalNotificationBus(t *testing.T) {
	bus := NewLocalNotificationBus(logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var got []notification.Event
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = bus.SubscribeNotificationEvents(ctx, func(e notification.Event) {
			mu.Lock()
			got = append(got, e)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		bus.mu.RLock()
		defer bus.mu.RUnlock()
		return len(bus.handlers) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.PublishNotificationEvent(context.Background(), notification.NewAllReadEvent(4, time.Now())))

	mu.Lock()
	require.Len(t, got, 1)
	assert.True(t, got[0].AllRead)
	mu.Unlock()

	cancel()
	<-done

	bus.mu.RLock()
	assert.Empty(t, bus.handlers)
	bus.mu.RUnlock()
}
