package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"points-board-api/internal/domain"
	"points-board-api/internal/dto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// Event types sent to live subscribers
const (
	EventBoardSnapshot  = "BOARD_SNAPSHOT"
	EventBoardDeleted   = "BOARD_DELETED"
	EventSessionRevoked = "SESSION_REVOKED"
)

// Event is one message on the live board stream
type Event struct {
	Type    string             `json:"type"`
	BoardID uint               `json:"boardId"`
	Board   *dto.BoardResponse `json:"board,omitempty"`
}

// BoardLoader loads a board with participants in display order
type BoardLoader interface {
	FindByIDWithParticipants(ctx context.Context, id uint) (*domain.Board, error)
}

// Hub fans board snapshots out to websocket subscribers, keyed by board id
type Hub struct {
	loader BoardLoader
	logger *zap.Logger

	mu     sync.RWMutex
	boards map[uint]map[*Client]struct{}
}

// Client is one websocket subscriber of a board. sessionID is the jti of
// the token the connection was opened with.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	boardID   uint
	sessionID string
	send      chan []byte
}

// NewHub creates a Hub
func NewHub(loader BoardLoader, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		loader: loader,
		logger: logger,
		boards: make(map[uint]map[*Client]struct{}),
	}
}

// Serve registers conn as a subscriber of boardID for the session sessionID,
// queues the initial snapshot and starts the connection pumps
func (h *Hub) Serve(conn *websocket.Conn, boardID uint, sessionID string, initial *dto.BoardResponse) error {
	payload, err := json.Marshal(Event{Type: EventBoardSnapshot, BoardID: boardID, Board: initial})
	if err != nil {
		return err
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		boardID:   boardID,
		sessionID: sessionID,
		send:      make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	if h.boards[boardID] == nil {
		h.boards[boardID] = make(map[*Client]struct{})
	}
	h.boards[boardID][client] = struct{}{}
	client.send <- payload
	h.mu.Unlock()

	h.logger.Debug("Live subscriber registered", zap.Uint("board_id", boardID))

	go client.writePump()
	go client.readPump()
	return nil
}

// SubscriberCount returns the number of live subscribers of boardID
func (h *Hub) SubscriberCount(boardID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.boards[boardID])
}

// BoardChanged pushes a fresh snapshot to the board's subscribers
func (h *Hub) BoardChanged(ctx context.Context, boardID uint) {
	if h.SubscriberCount(boardID) == 0 {
		return
	}

	board, err := h.loader.FindByIDWithParticipants(ctx, boardID)
	if err != nil {
		h.logger.Warn("Failed to load board snapshot", zap.Uint("board_id", boardID), zap.Error(err))
		return
	}

	payload, err := json.Marshal(Event{Type: EventBoardSnapshot, BoardID: boardID, Board: dto.NewBoardResponse(board)})
	if err != nil {
		h.logger.Error("Failed to encode board snapshot", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.boards[boardID] {
		select {
		case client.send <- payload:
		default:
			// slow consumer
			h.removeLocked(client)
		}
	}
}

// BoardDeleted tells the board's subscribers and disconnects them
func (h *Hub) BoardDeleted(boardID uint) {
	payload, _ := json.Marshal(Event{Type: EventBoardDeleted, BoardID: boardID})

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.boards[boardID] {
		select {
		case client.send <- payload:
		default:
		}
		h.removeLocked(client)
	}
}

// SessionRevoked disconnects every subscriber opened with the token jti
func (h *Hub) SessionRevoked(jti string) {
	if jti == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for boardID, clients := range h.boards {
		for client := range clients {
			if client.sessionID != jti {
				continue
			}
			payload, _ := json.Marshal(Event{Type: EventSessionRevoked, BoardID: boardID})
			select {
			case client.send <- payload:
			default:
			}
			h.removeLocked(client)
		}
	}
}

// Close disconnects every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.boards {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked closes the client's send channel exactly once; callers hold mu
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.boards[client.boardID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.boards, client.boardID)
	}
}

// readPump discards client messages and tracks pongs until the peer goes away
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("Live subscriber read error", zap.Error(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
