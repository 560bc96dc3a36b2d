package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"clinic-backend/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const defaultNotificationLimit = 50

// GetNotifications returns the caller's most recent notifications and marks
// every unread one as read: opening the list acknowledges everything.
func (s *Server) GetNotifications(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	limit := defaultNotificationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	notifications, err := s.store.ListAndMarkRead(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// GetUnreadStatus reports whether the caller has unread notifications,
// without marking anything read (badge check).
func (s *Server) GetUnreadStatus(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	hasUnread, err := s.store.HasUnread(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"has_unread": hasUnread})
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin is enforced by the auth token, not the Origin header.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NotificationSocket upgrades the request to a websocket and registers it as
// the caller's live connection. The server only ever pushes a content-free
// "notification" event; the client re-fetches the authoritative list over
// the pull endpoint.
func (s *Server) NotificationSocket(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade for user %s failed: %v", userID, err)
		return
	}

	client := realtime.NewClient()
	s.hub.Register(userID, client)

	done := make(chan struct{})
	go s.notificationWritePump(conn, client, done)

	// Read loop: the client sends nothing meaningful, but reading is what
	// detects the disconnect and keeps pong handling alive.
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.hub.Unregister(userID, client)
	close(done)
	conn.Close()
}

func (s *Server) notificationWritePump(conn *websocket.Conn, client *realtime.Client, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-client.Signals():
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(gin.H{"event": "notification"}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
