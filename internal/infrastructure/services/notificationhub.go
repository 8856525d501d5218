// Package services provides infrastructure services.
package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/procureflow/procureflow/internal/domain/notification"
	"github.com/procureflow/procureflow/internal/shared/biztime"
	"github.com/procureflow/procureflow/internal/shared/logger"
)

// StreamConn is one realtime subscriber, either SSE or websocket.
type StreamConn struct {
	ID          string
	UserID      uint
	Send        chan []byte
	ConnectedAt time.Time
	closed      atomic.Bool
}

// TrySend drops the message when the subscriber is slow or gone.
func (c *StreamConn) TrySend(data []byte) (sent bool) {
	if c.closed.Load() {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			sent = false
		}
	}()

	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *StreamConn) Close() {
	if c.closed.CompareAndSwap(false, true) {
		close(c.Send)
	}
}

type NotificationHubConfig struct {
	MaxConnsPerUser int
}

// NotificationHub tracks realtime subscribers per user and routes
// notification events to the owner's connections only.
type NotificationHub struct {
	mu              sync.RWMutex
	byUser          map[uint]map[string]*StreamConn
	maxConnsPerUser int
	shutdown        atomic.Bool
	encode          func(event notification.Event) ([]byte, error)
	logger          logger.Interface
}

func NewNotificationHub(log logger.Interface, cfg *NotificationHubConfig, encode func(event notification.Event) ([]byte, error)) *NotificationHub {
	maxConns := 5
	if cfg != nil && cfg.MaxConnsPerUser > 0 {
		maxConns = cfg.MaxConnsPerUser
	}
	return &NotificationHub{
		byUser:          make(map[uint]map[string]*StreamConn),
		maxConnsPerUser: maxConns,
		encode:          encode,
		logger:          log,
	}
}

// Register returns nil when the user is at the connection limit or the hub
// is shutting down.
func (h *NotificationHub) Register(connID string, userID uint) *StreamConn {
	if h.shutdown.Load() {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.byUser[userID]
	if len(conns) >= h.maxConnsPerUser {
		h.logger.Warnw("notification stream limit exceeded",
			"user_id", userID,
			"limit", h.maxConnsPerUser,
		)
		return nil
	}
	if conns == nil {
		conns = make(map[string]*StreamConn)
		h.byUser[userID] = conns
	}

	conn := &StreamConn{
		ID:          connID,
		UserID:      userID,
		Send:        make(chan []byte, 64),
		ConnectedAt: biztime.NowUTC(),
	}
	conns[connID] = conn

	h.logger.Infow("notification stream registered",
		"conn_id", connID,
		"user_id", userID,
	)
	return conn
}

func (h *NotificationHub) Unregister(conn *StreamConn) {
	h.mu.Lock()
	conns, ok := h.byUser[conn.UserID]
	if ok {
		if _, found := conns[conn.ID]; !found {
			ok = false
		} else {
			delete(conns, conn.ID)
			if len(conns) == 0 {
				delete(h.byUser, conn.UserID)
			}
		}
	}
	h.mu.Unlock()

	if ok {
		conn.Close()
		h.logger.Infow("notification stream unregistered",
			"conn_id", conn.ID,
			"user_id", conn.UserID,
		)
	}
}

// Deliver is the bus handler: it pushes the event to the owner's streams.
func (h *NotificationHub) Deliver(event notification.Event) {
	data, err := h.encode(event)
	if err != nil {
		h.logger.Errorw("failed to encode notification event",
			"user_id", event.UserID,
			"error", err,
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.byUser[event.UserID] {
		if !conn.TrySend(data) {
			h.logger.Warnw("failed to push notification event, channel full",
				"conn_id", conn.ID,
				"user_id", event.UserID,
			)
		}
	}
}

func (h *NotificationHub) ConnCount(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}

// Shutdown closes every stream. Safe to call more than once.
func (h *NotificationHub) Shutdown() {
	if !h.shutdown.CompareAndSwap(false, true) {
		return
	}

	h.mu.Lock()
	for _, conns := range h.byUser {
		for _, conn := range conns {
			conn.Close()
		}
	}
	h.byUser = make(map[uint]map[string]*StreamConn)
	h.mu.Unlock()

	h.logger.Infow("notification hub stopped")
}
