package facade

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"AuraFM/core/agent"
	"AuraFM/model"
)

// ChatService keeps per-session conversation history and relays messages
// to the support agent. Sessions live only as long as the process.
type ChatService struct {
	agent *agent.SupportAgent

	mu       sync.Mutex
	sessions map[string][]model.ChatMessage
}

func NewChatService(supportAgent *agent.SupportAgent) *ChatService {
	return &ChatService{
		agent:    supportAgent,
		sessions: make(map[string][]model.ChatMessage),
	}
}

// Chat sends a user message within a session and returns both the recorded
// user message and the agent reply. A blank session id starts a new session.
func (s *ChatService) Chat(ctx context.Context, req model.ChatRequest) model.ChatResponse {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	history := s.History(sessionID)
	reply := s.agent.Reply(ctx, history, req.Message)

	return s.record(sessionID, req.Message, reply)
}

// ChatStream behaves like Chat but delivers the reply incrementally through
// callback before recording the final text.
func (s *ChatService) ChatStream(ctx context.Context, req model.ChatRequest, callback agent.StreamCallback) model.ChatResponse {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	history := s.History(sessionID)
	reply := s.agent.ReplyStream(ctx, history, req.Message, callback)

	return s.record(sessionID, req.Message, reply)
}

// History returns a snapshot of a session's messages, oldest first.
func (s *ChatService) History(sessionID string) []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.sessions[sessionID]
	out := make([]model.ChatMessage, len(history))
	copy(out, history)
	return out
}

func (s *ChatService) record(sessionID, userText, agentText string) model.ChatResponse {
	now := time.Now()
	userMsg := model.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    model.SenderUser,
		Text:      userText,
		Timestamp: now,
	}
	agentMsg := model.ChatMessage{
		ID:        uuid.New().String(),
		Sender:    model.SenderAgent,
		Text:      agentText,
		Timestamp: now,
	}

	s.mu.Lock()
	s.sessions[sessionID] = append(s.sessions[sessionID], userMsg, agentMsg)
	s.mu.Unlock()

	return model.ChatResponse{
		SessionID:    sessionID,
		UserMessage:  &userMsg,
		AgentMessage: &agentMsg,
	}
}
