package agent

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"AuraFM/logger"
	"AuraFM/model"
)

// Degraded-mode replies. The agent never propagates an error to callers:
// the support view must always render something, even with zero
// configuration.
const (
	OfflineMessage      = "System Offline: API Key missing in backend configuration."
	UnresponsiveMessage = "Oracle system currently unresponsive."
	InterruptedMessage  = "Connection interrupted."
)

// SupportAgentConfig contains configuration for the support agent.
type SupportAgentConfig struct {
	APIBaseURL  string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// SupportAgent answers support chat messages through an OpenAI-compatible
// completion API, speaking as "Oracle", the AI core of the app.
type SupportAgent struct {
	config     *SupportAgentConfig
	httpClient *http.Client
}

// SupportAgentSystemPrompt is the fixed Oracle persona. The length guidance
// keeps replies chat-bubble sized.
const SupportAgentSystemPrompt = `You are "Oracle", the AI core of the Aura Music app.
Your tone is futuristic, concise, and helpful.
Context: User is asking about music, app features (Stats, Social Battles), or technical issues.
Keep response under 30 words.`

// NewSupportAgent creates a new support agent.
func NewSupportAgent(config *SupportAgentConfig) *SupportAgent {
	return &SupportAgent{
		config: config,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // Longer timeout for streaming
		},
	}
}

// Configured reports whether an API key is present.
func (a *SupportAgent) Configured() bool {
	return a.config.APIKey != ""
}

// buildMessages constructs the message array for the API call.
func (a *SupportAgent) buildMessages(history []model.ChatMessage, userMessage string) []model.OpenAIChatMessage {
	messages := make([]model.OpenAIChatMessage, 0, len(history)+2)

	messages = append(messages, model.OpenAIChatMessage{
		Role:    "system",
		Content: SupportAgentSystemPrompt,
	})

	for _, msg := range history {
		role := "user"
		if msg.Sender == model.SenderAgent {
			role = "assistant"
		}
		messages = append(messages, model.OpenAIChatMessage{
			Role:    role,
			Content: msg.Text,
		})
	}

	messages = append(messages, model.OpenAIChatMessage{
		Role:    "user",
		Content: userMessage,
	})

	return messages
}

// Reply answers a user utterance, degrading to fixed fallback text when the
// upstream is unconfigured, unresponsive or returns nothing.
func (a *SupportAgent) Reply(ctx context.Context, history []model.ChatMessage, userMessage string) string {
	if !a.Configured() {
		return OfflineMessage
	}

	reply, err := a.chat(ctx, history, userMessage)
	if err != nil {
		logger.Error("Support agent call failed", logger.ErrorField(err))
		return UnresponsiveMessage
	}
	if strings.TrimSpace(reply) == "" {
		return InterruptedMessage
	}
	return reply
}

// chat sends a message and returns the complete response.
func (a *SupportAgent) chat(ctx context.Context, history []model.ChatMessage, userMessage string) (string, error) {
	messages := a.buildMessages(history, userMessage)

	reqBody := model.OpenAIChatRequest{
		Model:       a.config.Model,
		Messages:    messages,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
		Stream:      false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.config.APIBaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp model.OpenAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// StreamCallback is called for each chunk of the streaming response.
type StreamCallback func(chunk string) error

// ReplyStream answers with a streamed response, falling back to the
// non-streaming path (and finally to the degraded-mode messages) when the
// stream fails or produces nothing. The full reply is returned either way.
func (a *SupportAgent) ReplyStream(ctx context.Context, history []model.ChatMessage, userMessage string, callback StreamCallback) string {
	if !a.Configured() {
		if callback != nil {
			callback(OfflineMessage)
		}
		return OfflineMessage
	}

	result, err := a.chatStream(ctx, history, userMessage, callback)
	if err != nil {
		logger.Warn("Streaming chat failed, falling back to non-streaming",
			logger.ErrorField(err))
		reply := a.Reply(ctx, history, userMessage)
		if callback != nil {
			callback(reply)
		}
		return reply
	}

	if strings.TrimSpace(result) == "" {
		reply := a.Reply(ctx, history, userMessage)
		if callback != nil {
			callback(reply)
		}
		return reply
	}

	return result
}

// chatStream is the internal SSE streaming implementation.
func (a *SupportAgent) chatStream(ctx context.Context, history []model.ChatMessage, userMessage string, callback StreamCallback) (string, error) {
	messages := a.buildMessages(history, userMessage)

	reqBody := model.OpenAIChatRequest{
		Model:       a.config.Model,
		Messages:    messages,
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
		Stream:      true,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.config.APIBaseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var fullContent strings.Builder
	reader := bufio.NewReader(resp.Body)

	for {
		select {
		case <-ctx.Done():
			return fullContent.String(), ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fullContent.String(), fmt.Errorf("failed to read stream: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var chunk model.OpenAIStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			logger.Warn("Failed to parse stream chunk",
				logger.String("data", data),
				logger.ErrorField(err))
			continue
		}

		if len(chunk.Choices) > 0 {
			delta := chunk.Choices[0].Delta
			if delta.Content != "" {
				fullContent.WriteString(delta.Content)

				if callback != nil {
					if err := callback(delta.Content); err != nil {
						// A single failed write isn't fatal to the stream.
						logger.Warn("Callback error during streaming, continuing",
							logger.ErrorField(err))
					}
				}
			}
		}
	}

	return fullContent.String(), nil
}
