package devtools

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/minivue/pkg/memdom"
)

// MessageType labels a websocket message.
type MessageType string

const (
	// MessageSnapshot carries the tree HTML, sent once on connect.
	MessageSnapshot MessageType = "snapshot"
	// MessageOp carries one host operation.
	MessageOp MessageType = "op"
)

// Message is sent to websocket clients.
type Message struct {
	Type MessageType `json:"type"`
	HTML string      `json:"html,omitempty"`
	Op   *memdom.Op  `json:"op,omitempty"`
}

const (
	sendBuffer = 256
	writeWait  = 5 * time.Second
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("devtools upgrade failed", "error", err, "origin", r.Header.Get("Origin"))
		return
	}
	if s.upgraded != nil {
		s.upgraded()
	}

	// Snapshot and registration share one loop turn, so every op recorded
	// after the snapshot reaches the client.
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	err = s.loop.Call(r.Context(), func() {
		data, _ := json.Marshal(Message{Type: MessageSnapshot, HTML: s.app.HTML()})
		c.send <- data
		s.mu.Lock()
		s.clients[c] = struct{}{}
		s.mu.Unlock()
	})
	if err != nil {
		s.logger.Warn("devtools loop call failed", "path", r.URL.Path, "error", err)
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()))
		conn.Close()
		return
	}
	s.logger.Info("devtools client connected", "remote", r.RemoteAddr)

	go c.writePump()

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.remove(c)
	s.logger.Info("devtools client disconnected", "remote", r.RemoteAddr)
}

func (c *client) writePump() {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			c.conn.Close()
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.conn.Close()
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}

// broadcastOp runs on the loop goroutine for every recorded host
// operation. Slow clients drop messages rather than stall the loop.
func (s *Server) broadcastOp(op memdom.Op) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.clients) == 0 {
		return
	}

	data, err := json.Marshal(Message{Type: MessageOp, Op: &op})
	if err != nil {
		return
	}
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.logger.Warn("devtools client too slow, dropping op", "kind", op.Kind)
		}
	}
}
