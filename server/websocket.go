package server

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"
)

// MessageType tags websocket messages.
type MessageType string

const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeMove     MessageType = "move"
	MessageTypeComputer MessageType = "computer"
	MessageTypeError    MessageType = "error"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func newMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

// MoveRequest is the body of a human move, over REST or websocket.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

// handleSocket subscribes the connection to its game and processes moves
// sent over it until the client goes away.
func (srv *Server) handleSocket(conn *websocket.Conn) {
	s, err := srv.manager.get(conn.Params("id"))
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err))
		conn.Close()
		return
	}
	s.subscribe(conn)
	defer s.unsubscribe(conn)

	if msg, err := newMessage(MessageTypeSnapshot, s.Snapshot()); err == nil {
		if err := s.send(conn, msg); err != nil {
			return
		}
	}

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("game %s: parse error: %v", s.id, err)
			_ = s.send(conn, errorMessage(err))
			continue
		}
		if err := srv.handleMessage(s, msg); err != nil {
			_ = s.send(conn, errorMessage(err))
		}
	}
}

// handleMessage applies a client message. Successful moves reach the client
// through the broadcast.
func (srv *Server) handleMessage(s *session, msg Message) error {
	switch msg.Type {
	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		from, to, promo, err := req.parse()
		if err != nil {
			return err
		}
		_, err = s.Play(from, to, promo)
		return err
	case MessageTypeComputer:
		_, err := s.Computer()
		return err
	}
	return fmt.Errorf("unknown message type: %s", msg.Type)
}

func errorMessage(err error) Message {
	msg, _ := newMessage(MessageTypeError, err.Error())
	return msg
}
