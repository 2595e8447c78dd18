package ws

import (
	"net/http"

	"stagematch_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Клиенты авторизуются токеном, origin не ограничиваем
		return true
	},
}

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// Serve апгрейдит авторизованный запрос до вебсокета и подписывает
// пользователя на его события
func (h *Handler) Serve(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("Не удалось апгрейдить соединение до вебсокета")
		return
	}

	client := newClient(h.hub, conn, userID.(string))
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
