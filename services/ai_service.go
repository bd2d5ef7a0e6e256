package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ChatTurn is one prior message in a conversation, oldest first.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces text from the external chat-completions gateway.
// Kept narrow so composers can be tested with a fake.
type Generator interface {
	Generate(systemPrompt, userPrompt string) (string, error)
	Chat(systemPrompt string, history []ChatTurn, userPrompt string) (string, error)
}

type AIGatewayService struct {
	client *http.Client
	apiKey string
	model  string
	url    string
}

func NewAIGatewayService() *AIGatewayService {
	url := os.Getenv("AI_GATEWAY_URL")
	if url == "" {
		url = "https://ai.gateway.lovable.dev/v1/chat/completions"
	}
	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = "google/gemini-2.5-flash"
	}
	return &AIGatewayService{
		client: &http.Client{Timeout: 15 * time.Second},
		apiKey: os.Getenv("AI_GATEWAY_KEY"),
		model:  model,
		url:    url,
	}
}

func (a *AIGatewayService) Generate(systemPrompt, userPrompt string) (string, error) {
	return a.Chat(systemPrompt, nil, userPrompt)
}

func (a *AIGatewayService) Chat(systemPrompt string, history []ChatTurn, userPrompt string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("AI_GATEWAY_KEY not set")
	}

	messages := make([]ChatTurn, 0, len(history)+2)
	messages = append(messages, ChatTurn{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, ChatTurn{Role: "user", Content: userPrompt})

	body := map[string]any{
		"model":    a.model,
		"messages": messages,
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", a.url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai gateway request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read ai gateway response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("ai gateway error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("ai gateway error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("decode ai gateway response error: %v", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty completion from ai gateway")
	}
	return out.Choices[0].Message.Content, nil
}
