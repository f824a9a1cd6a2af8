// Package chat serves the live concierge conversation over a websocket.
package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/locle27/Koyeb-Booking-sub000/internal/rag"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// request is the incoming message format.
type request struct {
	Type      string `json:"type"` // "hello" or "ask"
	GuestName string `json:"guest_name,omitempty"`
	Content   string `json:"content"`
}

// response is the outgoing message format.
type response struct {
	Type      string      `json:"type"` // "welcome", "answer" or "error"
	GuestName string      `json:"guest_name,omitempty"`
	Content   string      `json:"content,omitempty"`
	Answer    *rag.Answer `json:"answer,omitempty"`
}

// Handler answers guest messages on a websocket. A connection remembers the
// last guest name it was given so later messages may omit it.
type Handler struct {
	engine rag.Engine
	log    *logrus.Entry
}

// NewHandler creates a chat handler.
func NewHandler(engine rag.Engine, log *logrus.Entry) *Handler {
	return &Handler{engine: engine, log: log}
}

// RegisterRoutes mounts the chat endpoint.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/ws/concierge", h.ServeHTTP)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade")
		return
	}
	defer conn.Close()

	guest := strings.TrimSpace(r.URL.Query().Get("guest_name"))

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("websocket read")
			}
			return
		}

		var req request
		if err := json.Unmarshal(msg, &req); err != nil {
			h.send(conn, response{Type: "error", Content: "invalid message format"})
			continue
		}
		if name := strings.TrimSpace(req.GuestName); name != "" {
			guest = name
		}

		switch req.Type {
		case "hello":
			h.send(conn, response{Type: "welcome", GuestName: guest, Content: greeting(guest)})
		case "ask":
			if strings.TrimSpace(req.Content) == "" {
				h.send(conn, response{Type: "error", Content: "content is required"})
				continue
			}
			ans := h.engine.GenerateAnswer(r.Context(), req.Content, guest)
			h.send(conn, response{Type: "answer", GuestName: guest, Answer: ans})
		default:
			h.send(conn, response{Type: "error", Content: "unknown message type: " + req.Type})
		}
	}
}

func greeting(guest string) string {
	if guest == "" {
		return "Hello! Ask me anything about your stay."
	}
	return "Hello " + guest + "! Ask me anything about your stay."
}

func (h *Handler) send(conn *websocket.Conn, resp response) {
	if err := conn.WriteJSON(resp); err != nil {
		h.log.WithError(err).Warn("websocket write")
	}
}
