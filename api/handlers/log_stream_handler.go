package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yourusername/clipgenius-go/pkg/logger"
	"go.uber.org/zap"
)

const (
	initialStreamEntries = 50
	pingInterval         = 30 * time.Second
	writeTimeout         = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	// the API only listens on localhost by default
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LogStreamHandler streams category logs over WebSocket
type LogStreamHandler struct {
	logReader *logger.LogReader
	logger    *zap.Logger
}

// NewLogStreamHandler creates a new log stream handler. An empty logsDir
// disables streaming.
func NewLogStreamHandler(logsDir string, log *zap.Logger) *LogStreamHandler {
	h := &LogStreamHandler{logger: log}
	if logsDir != "" {
		h.logReader = logger.NewLogReader(logsDir)
	}
	return h
}

// HandleWebSocket handles GET /api/v1/logs/:category/ws. It sends the
// last entries of today's log, then every entry appended afterwards.
func (h *LogStreamHandler) HandleWebSocket(c *gin.Context) {
	if h.logReader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "category logs are disabled"})
		return
	}

	category, err := logger.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade WebSocket", zap.Error(err))
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket client connected",
		zap.String("category", string(category)),
		zap.String("remote_addr", c.Request.RemoteAddr))

	if entries, err := h.logReader.ReadTodayLogs(category, initialStreamEntries); err == nil {
		for _, entry := range entries {
			if err := h.send(conn, entry); err != nil {
				return
			}
		}
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// the read loop only notices the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	entries := make(chan logger.LogEntry, 100)
	go func() {
		if err := h.logReader.Follow(ctx, category, entries); err != nil {
			h.logger.Warn("Log follow error", zap.Error(err))
			cancel()
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case entry := <-entries:
			if err := h.send(conn, entry); err != nil {
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(writeTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *LogStreamHandler) send(conn *websocket.Conn, entry logger.LogEntry) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(entry); err != nil {
		h.logger.Debug("Failed to send log entry", zap.Error(err))
		return err
	}
	return nil
}
