package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/procureflow/procureflow/internal/infrastructure/services"
	"github.com/procureflow/procureflow/internal/interfaces/http/middleware"
	"github.com/procureflow/procureflow/internal/shared/logger"
	"github.com/procureflow/procureflow/internal/shared/utils"
)

const (
	streamWriteWait        = 10 * time.Second
	streamPongWait         = 60 * time.Second
	defaultStreamKeepalive = 30 * time.Second
)

// pongWaitFor gives a client at least two ping intervals to answer before
// its socket is considered dead.
func pongWaitFor(keepalive time.Duration) time.Duration {
	return max(streamPongWait, 2*keepalive)
}

// StreamHub is the part of the notification hub the stream handlers use.
type StreamHub interface {
	Register(connID string, userID uint) *services.StreamConn
	Unregister(conn *services.StreamConn)
}

// NotificationStreamHandler pushes the caller's notification events over
// SSE or a websocket.
type NotificationStreamHandler struct {
	hub       StreamHub
	keepalive time.Duration
	pongWait  time.Duration
	upgrader  websocket.Upgrader
	logger    logger.Interface
}

func NewNotificationStreamHandler(hub StreamHub, keepalive time.Duration, allowedOrigins []string, log logger.Interface) *NotificationStreamHandler {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}

	if keepalive <= 0 {
		keepalive = defaultStreamKeepalive
	}

	return &NotificationStreamHandler{
		hub:       hub,
		keepalive: keepalive,
		pongWait:  pongWaitFor(keepalive),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins[origin]
			},
		},
		logger: log,
	}
}

func (h *NotificationStreamHandler) register(c *gin.Context) (*services.StreamConn, bool) {
	userID, _, err := middleware.CurrentActor(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return nil, false
	}

	conn := h.hub.Register(uuid.NewString(), userID)
	if conn == nil {
		utils.ErrorResponse(c, http.StatusTooManyRequests, "too many open notification streams")
		return nil, false
	}
	return conn, true
}

// Stream godoc
// @Summary Notification event stream
// @Description Server-sent events carrying the caller's notification changes
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Param token query string false "Access token for clients that cannot set headers"
// @Success 200 {string} string "text/event-stream"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 429 {object} utils.APIResponse "Too many open streams"
// @Router /notifications/stream [get]
func (h *NotificationStreamHandler) Stream(c *gin.Context) {
	conn, ok := h.register(c)
	if !ok {
		return
	}
	defer h.hub.Unregister(conn)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	if _, err := c.Writer.WriteString(": connected\n\n"); err != nil {
		h.logger.Warnw("notification stream initial write failed", "conn_id", conn.ID, "error", err)
		return
	}
	c.Writer.Flush()

	ticker := time.NewTicker(h.keepalive)
	defer ticker.Stop()
	ctx := c.Request.Context()

	for {
		select {
		case <-ctx.Done():
			return

		case data, ok := <-conn.Send:
			if !ok {
				return
			}
			if _, err := c.Writer.WriteString("event: notification\ndata: " + string(data) + "\n\n"); err != nil {
				h.logger.Warnw("notification stream write failed", "conn_id", conn.ID, "error", err)
				return
			}
			c.Writer.Flush()

		case <-ticker.C:
			if _, err := c.Writer.WriteString(": keepalive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}

// WebSocket godoc
// @Summary Notification websocket
// @Description Websocket carrying the caller's notification changes
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Param token query string false "Access token for clients that cannot set headers"
// @Success 101 {string} string "Switching protocols"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 429 {object} utils.APIResponse "Too many open streams"
// @Router /notifications/ws [get]
func (h *NotificationStreamHandler) WebSocket(c *gin.Context) {
	conn, ok := h.register(c)
	if !ok {
		return
	}
	defer h.hub.Unregister(conn)

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("notification websocket upgrade failed", "conn_id", conn.ID, "error", err)
		return
	}
	defer ws.Close()

	// The client never sends payloads; reading only tracks pongs and close.
	closed := make(chan struct{})
	ws.SetReadLimit(512)
	_ = ws.SetReadDeadline(time.Now().Add(h.pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(h.keepalive)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return

		case data, ok := <-conn.Send:
			_ = ws.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !ok {
				_ = ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Warnw("notification websocket write failed", "conn_id", conn.ID, "error", err)
				return
			}

		case <-ping.C:
			_ = ws.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
