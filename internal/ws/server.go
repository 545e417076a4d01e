package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"twentyone/internal/command"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Client struct {
	conn *websocket.Conn
	send chan []byte
	ctx  context.Context
}

// Server runs text commands received over WebSocket connections. It holds
// no game state of its own.
type Server struct {
	dispatcher *command.Dispatcher
	upgrader   websocket.Upgrader
	mu         sync.Mutex
	clients    map[*Client]bool
}

func NewServer(dispatcher *command.Dispatcher) *Server {
	return &Server{
		dispatcher: dispatcher,
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		clients:    map[*Client]bool{},
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()
	client := &Client{conn: conn, send: make(chan []byte, 8), ctx: ctx}

	s.mu.Lock()
	s.clients[client] = true
	s.mu.Unlock()

	go s.writeLoop(client)
	s.readLoop(client)
}

// Connections reports how many clients are attached.
func (s *Server) Connections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) readLoop(c *Client) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &base); err != nil {
			s.sendResult(c, CommandResult{Error: "invalid_message"})
			continue
		}
		switch base.Type {
		case MsgCommand:
			s.handleCommand(c, msg)
		case MsgPing:
			out, _ := json.Marshal(Pong{Type: MsgPong, ProtocolVersion: ProtocolVersion, TimestampMS: time.Now().UnixMilli()})
			safeSend(c.send, out)
		default:
			s.sendResult(c, CommandResult{Error: "unknown_message_type"})
		}
	}
}

func (s *Server) writeLoop(c *Client) {
	for msg := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, msg)
	}
}

func (s *Server) handleCommand(c *Client, raw []byte) {
	var msg CommandMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		s.sendResult(c, CommandResult{Error: "invalid_message"})
		return
	}
	if msg.RequestID == "" || len(msg.RequestID) > maxRequestIDLen {
		s.sendResult(c, CommandResult{RequestID: msg.RequestID, Error: "invalid_request_id"})
		return
	}
	if msg.ChatID == "" || msg.UserID == "" {
		s.sendResult(c, CommandResult{RequestID: msg.RequestID, Error: "invalid_request"})
		return
	}

	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	reply := s.dispatcher.Handle(ctx, msg.ChatID, msg.UserID, msg.Text)
	log.Debug().Str("request_id", msg.RequestID).Str("chat_id", msg.ChatID).Str("user_id", msg.UserID).Str("command", reply.Command).Str("error", reply.Error).Msg("ws_command")
	s.sendResult(c, CommandResult{
		RequestID: msg.RequestID,
		Ok:        reply.Err == nil,
		Command:   reply.Command,
		Text:      reply.Text,
		Error:     reply.Error,
		Data:      reply.Data,
	})
}

func (s *Server) sendResult(c *Client, res CommandResult) {
	res.Type = MsgCommandResult
	res.ProtocolVersion = ProtocolVersion
	out, err := json.Marshal(res)
	if err != nil {
		log.Error().Err(err).Msg("marshal command_result")
		return
	}
	safeSend(c.send, out)
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	safeClose(c.send)
}

func safeClose(ch chan []byte) {
	defer func() {
		_ = recover()
	}()
	close(ch)
}

func safeSend(ch chan []byte, msg []byte) {
	defer func() {
		_ = recover()
	}()
	ch <- msg
}
