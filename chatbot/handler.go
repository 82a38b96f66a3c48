package chatbot

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ManishR23/clink-chatbot/inventory"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler handles WebSocket chat connections
type Handler struct {
	bot *Bot
}

// NewHandler creates a new chat handler
func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

// ServeHTTP handles the WebSocket upgrade and one chat turn. The session is
// continued via the session_id query parameter; the (possibly new) session ID
// is sent back with the "done" message
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := r.URL.Query().Get("session_id")

	var clientMsg ClientMessage
	if err := conn.ReadJSON(&clientMsg); err != nil {
		h.sendError(conn, "Failed to read message")
		return
	}

	reply, sessionID, err := h.bot.ProcessTurn(r.Context(), sessionID, clientMsg.Message)
	if err != nil {
		var invErr *inventory.Error
		if errors.As(err, &invErr) && invErr.Type == inventory.ErrorTypeUser {
			h.sendError(conn, invErr.Description)
			return
		}
		log.Printf("Chat turn failed: %v", err)
		h.sendError(conn, "Assistant request failed")
		return
	}

	if err := conn.WriteJSON(ServerMessage{
		Type:    MessageTypeText,
		Content: reply,
	}); err != nil {
		log.Printf("Failed to write reply: %v", err)
		return
	}

	conn.WriteJSON(ServerMessage{
		Type:      MessageTypeDone,
		SessionID: sessionID,
	})
}

func (h *Handler) sendError(conn *websocket.Conn, msg string) {
	conn.WriteJSON(ServerMessage{
		Type:  MessageTypeError,
		Error: msg,
	})
}
