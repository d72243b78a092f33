package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/lib/logger/sl"
)

const defaultWriteTimeout = 10 * time.Second

// Hub delivers messages over the WebSocket each participant keeps open.
// A participant without a live socket is unreachable.
type Hub struct {
	mu           sync.RWMutex
	conns        map[int64]*Conn
	log          *slog.Logger
	writeTimeout time.Duration
}

// Conn is one participant socket. Writes are serialised because gorilla
// connections support a single concurrent writer.
type Conn struct {
	ParticipantID int64
	ConnectedAt   time.Time
	mu            sync.Mutex
	socket        *websocket.Conn
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		conns:        make(map[int64]*Conn),
		log:          log,
		writeTimeout: defaultWriteTimeout,
	}
}

// Register attaches socket to participantID, closing any previous socket.
func (h *Hub) Register(participantID int64, socket *websocket.Conn) *Conn {
	conn := &Conn{
		ParticipantID: participantID,
		ConnectedAt:   time.Now().UTC(),
		socket:        socket,
	}

	h.mu.Lock()
	previous := h.conns[participantID]
	h.conns[participantID] = conn
	h.mu.Unlock()

	if previous != nil {
		previous.close()
	}

	h.log.Info("participant connected", slog.Int64("participant_id", participantID))
	return conn
}

// Unregister detaches conn if it is still the participant's current socket.
func (h *Hub) Unregister(conn *Conn) {
	if conn == nil {
		return
	}

	h.mu.Lock()
	if h.conns[conn.ParticipantID] == conn {
		delete(h.conns, conn.ParticipantID)
	}
	h.mu.Unlock()

	conn.close()
	h.log.Info("participant disconnected", slog.Int64("participant_id", conn.ParticipantID))
}

// Serve reads from the socket until it fails, then unregisters it. Inbound
// frames are ignored; reading keeps control frames flowing.
func (h *Hub) Serve(conn *Conn) {
	defer h.Unregister(conn)
	for {
		if _, _, err := conn.socket.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) Connected(participantID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[participantID]
	return ok
}

func (h *Hub) Deliver(ctx context.Context, participantID int64, msg domain.Message) error {
	const op = "notifier.hub.deliver"
	log := h.log.With(
		slog.String("op", op),
		slog.Int64("participant_id", participantID),
		slog.String("type", msg.Type),
	)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	h.mu.RLock()
	conn := h.conns[participantID]
	h.mu.RUnlock()
	if conn == nil {
		log.Debug("participant has no open socket")
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, ErrRecipientUnreachable)
	}

	deadline := time.Now().Add(h.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	conn.mu.Lock()
	err := conn.socket.SetWriteDeadline(deadline)
	if err == nil {
		err = conn.socket.WriteJSON(msg)
	}
	conn.mu.Unlock()

	if err != nil {
		log.Warn("write failed", sl.Err(err))
		h.Unregister(conn)
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	return nil
}

func (c *Conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.socket != nil {
		_ = c.socket.Close()
	}
}
