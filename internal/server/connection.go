package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/slimsherpa/rook13/internal/game"
)

// Connection wraps one WebSocket client. Reads are decoded into engine
// actions; writes go through a buffered channel so a slow client never
// blocks a broadcast.
type Connection struct {
	conn   *websocket.Conn
	send   chan *Message
	server *Server
	logger *log.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

const sendBuffer = 16

// NewConnection creates a connection around an upgraded websocket
func NewConnection(conn *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:   conn,
		send:   make(chan *Message, sendBuffer),
		server: server,
		logger: logger.WithPrefix("conn").With("remote", conn.RemoteAddr().String()),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the read and write pumps
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down
func (c *Connection) Close() error {
	c.cancel()
	return c.conn.Close()
}

// Send queues a message; drops it if the client cannot keep up
func (c *Connection) Send(msg *Message) {
	select {
	case c.send <- msg:
	default:
		c.logger.Warn("send buffer full, dropping message", "type", msg.Type)
	}
}

func (c *Connection) writePump() {
	for {
		select {
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("write failed", "error", err)
				c.cancel()
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) readPump() {
	defer c.cancel()
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read failed", "error", err)
			}
			return
		}
		c.dispatch(&msg)
	}
}

// dispatch decodes one client request and applies it to the engine. A
// rejected transition comes back as an error message; an applied one is
// visible to everyone through the state broadcast the runner triggers.
func (c *Connection) dispatch(msg *Message) {
	applied := false

	switch msg.Type {
	case MessageTypeJoin:
		var data JoinData
		if !c.decode(msg, &data) {
			return
		}
		c.server.StartGame(data.PlayerID, data.Name)
		applied = true

	case MessageTypeReady:
		var data ReadyData
		if !c.decode(msg, &data) {
			return
		}
		applied = c.server.engine.SetPlayerReady(data.Seat)

	case MessageTypePlaceBid:
		var data BidData
		if !c.decode(msg, &data) {
			return
		}
		applied = c.server.engine.PlaceBid(data.Seat, data.Bid)

	case MessageTypeGoDown:
		var data GoDownData
		if !c.decode(msg, &data) {
			return
		}
		applied = c.server.engine.SelectGoDown(data.Seat, data.Cards)

	case MessageTypeSelectTrump:
		var data TrumpData
		if !c.decode(msg, &data) {
			return
		}
		applied = c.server.engine.SelectTrump(data.Seat, data.Suit)

	case MessageTypePlayCard:
		var data PlayCardData
		if !c.decode(msg, &data) {
			return
		}
		applied = c.server.engine.PlayCard(data.Seat, data.Card)

	case MessageTypeReorder:
		var data ReorderData
		if !c.decode(msg, &data) {
			return
		}
		applied = c.server.engine.ReorderHand(data.Seat, data.Cards)
		// Cosmetic; no turn to re-evaluate, but observers still want the
		// updated ordering.
		if applied {
			c.server.broadcastState()
			return
		}

	case MessageTypeReset:
		c.server.engine.Reset()
		c.server.runner.Stop()
		c.server.broadcastState()
		return

	default:
		c.sendError("unknown_type", fmt.Sprintf("unknown message type %q", msg.Type))
		return
	}

	if !applied {
		c.sendError("rejected", fmt.Sprintf("%s was not legal in the current state", msg.Type))
		return
	}
	c.server.runner.Kick()
}

// decode unmarshals a payload, reporting malformed data to the client
func (c *Connection) decode(msg *Message, into interface{}) bool {
	if err := json.Unmarshal(msg.Data, into); err != nil {
		c.sendError("bad_payload", err.Error())
		return false
	}
	return true
}

func (c *Connection) sendError(code, detail string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: detail})
	if err != nil {
		return
	}
	c.Send(msg)
}

// sendState pushes the current snapshot to just this client
func (c *Connection) sendState(snap *game.GameState) {
	msg, err := NewStateMessage(snap)
	if err != nil {
		c.logger.Error("failed to encode state", "error", err)
		return
	}
	c.Send(msg)
}
