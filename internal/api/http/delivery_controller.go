package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/santa_bot/internal/notifier"
	"github.com/immxrtalbeast/santa_bot/lib/logger/sl"
)

// DeliveryController opens the socket outbound messages are pushed on.
type DeliveryController struct {
	hub      *notifier.Hub
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewDeliveryController(hub *notifier.Hub, log *slog.Logger) *DeliveryController {
	return &DeliveryController{
		hub: hub,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (c *DeliveryController) Connect(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Query("user_id"), 10, 64)
	if err != nil || userID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	socket, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Warn("websocket upgrade failed", slog.Int64("user_id", userID), sl.Err(err))
		return
	}

	conn := c.hub.Register(userID, socket)
	c.hub.Serve(conn)
}
