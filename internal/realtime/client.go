package realtime

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"order_admin/internal/middleware"
	"order_admin/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Handler upgrades authenticated requests to websocket connections and
// runs a read/write pump pair per connection.
type Handler struct {
	hub       *Hub
	processor *Processor
	log       *zap.Logger
	upgrader  websocket.Upgrader
}

func NewHandler(hub *Hub, processor *Processor, log *zap.Logger, allowedOrigin string) *Handler {
	return &Handler{
		hub:       hub,
		processor: processor,
		log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

// ServeWS handles the upgrade. The route sits behind the same cookie
// auth middleware as REST, so the caller's identity and role are already
// resolved server-side.
func (h *Handler) ServeWS(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id, send := h.hub.Register()
	go h.writePump(id, conn, send)
	h.readPump(id, conn, user)
}

func (h *Handler) readPump(id string, conn *websocket.Conn, user *models.User) {
	defer func() {
		h.hub.Unregister(id)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read error", zap.String("conn_id", id), zap.Error(err))
			}
			return
		}

		// Fire-and-forget: failures are logged, never sent back.
		if err := h.processor.Apply(user, raw); err != nil {
			h.log.Error("event apply failed",
				zap.String("conn_id", id),
				zap.Uint("user_id", user.ID),
				zap.Error(err),
			)
		}
	}
}

func (h *Handler) writePump(id string, conn *websocket.Conn, send <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
