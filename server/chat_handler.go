package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"AuraFM/facade"
	"AuraFM/logger"
	"AuraFM/model"
)

// ChatHandler handles support chat requests, both plain HTTP and the
// streaming WebSocket transport.
type ChatHandler struct {
	chat     *facade.ChatService
	upgrader websocket.Upgrader
}

const (
	writeWait      = 30 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // must be less than pongWait
	maxMessageSize = 8192

	replyTimeout = 2 * time.Minute
)

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat *facade.ChatService) *ChatHandler {
	return &ChatHandler{
		chat: chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ChatHandler handles a single request/response chat turn.
func (h *ChatHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), replyTimeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.chat.Chat(ctx, req))
}

// ChatHistoryHandler returns the messages recorded for a session.
func (h *ChatHandler) ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "session is required")
		return
	}
	respondJSON(w, http.StatusOK, h.chat.History(sessionID))
}

// WebSocketChatHandler handles WebSocket connections for streaming chat.
// Each connection is bound to one session: an existing id from the
// "session" query parameter, or a fresh one announced in the first frame.
func (h *ChatHandler) WebSocketChatHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("Failed to upgrade WebSocket", logger.ErrorField(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	logger.Info("Chat WebSocket connected", logger.String("sessionID", sessionID))

	h.sendMessage(conn, model.WebSocketMessage{Type: "session", Content: sessionID})

	done := make(chan struct{})
	go h.pingLoop(conn, done)
	defer close(done)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logger.Warn("Chat WebSocket unexpected close",
					logger.String("sessionID", sessionID),
					logger.ErrorField(err))
			}
			break
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var req model.ChatRequest
		if err := json.Unmarshal(message, &req); err != nil {
			h.sendError(conn, "Invalid message format")
			continue
		}
		if req.Message == "" {
			h.sendError(conn, "message is required")
			continue
		}
		req.SessionID = sessionID

		h.streamReply(conn, req)
	}
}

// streamReply runs one chat turn, relaying reply chunks as they arrive.
func (h *ChatHandler) streamReply(conn *websocket.Conn, req model.ChatRequest) {
	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	h.sendMessage(conn, model.WebSocketMessage{Type: "start"})

	// Degraded-mode replies arrive through the same callback as streamed
	// chunks, just as a single frame.
	resp := h.chat.ChatStream(ctx, req, func(chunk string) error {
		return h.sendMessage(conn, model.WebSocketMessage{Type: "content", Content: chunk})
	})

	h.sendMessage(conn, model.WebSocketMessage{Type: "end", Content: resp.AgentMessage.ID})
}

// pingLoop sends periodic pings to keep the connection alive.
func (h *ChatHandler) pingLoop(conn *websocket.Conn, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (h *ChatHandler) sendMessage(conn *websocket.Conn, msg model.WebSocketMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

func (h *ChatHandler) sendError(conn *websocket.Conn, message string) {
	h.sendMessage(conn, model.WebSocketMessage{Type: "error", Content: message})
}
