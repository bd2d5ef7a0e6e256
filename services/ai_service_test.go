package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayService(t *testing.T, handler http.HandlerFunc) *AIGatewayService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	t.Setenv("AI_GATEWAY_URL", srv.URL)
	t.Setenv("AI_GATEWAY_KEY", "test-key")
	t.Setenv("AI_MODEL", "google/gemini-2.5-flash")
	return NewAIGatewayService()
}

func TestChatSendsMessagesAndParsesReply(t *testing.T) {
	var got struct {
		Model    string     `json:"model"`
		Messages []ChatTurn `json:"messages"`
	}

	svc := gatewayService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "¡Vamos con todo!"}},
			},
		})
	})

	reply, err := svc.Chat("eres un coach", []ChatTurn{
		{Role: "user", Content: "hola"},
		{Role: "assistant", Content: "hola, ¿cómo estás?"},
	}, "dame un consejo")
	require.NoError(t, err)
	assert.Equal(t, "¡Vamos con todo!", reply)

	assert.Equal(t, "google/gemini-2.5-flash", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, ChatTurn{Role: "system", Content: "eres un coach"}, got.Messages[0])
	assert.Equal(t, ChatTurn{Role: "user", Content: "hola"}, got.Messages[1])
	assert.Equal(t, ChatTurn{Role: "assistant", Content: "hola, ¿cómo estás?"}, got.Messages[2])
	assert.Equal(t, ChatTurn{Role: "user", Content: "dame un consejo"}, got.Messages[3])
}

func TestGenerateIsSingleTurn(t *testing.T) {
	svc := gatewayService(t, func(w http.ResponseWriter, r *http.Request) {
		var got struct {
			Messages []ChatTurn `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		require.Len(t, got.Messages, 2)

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "ok"}},
			},
		})
	})

	reply, err := svc.Generate("sistema", "usuario")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestChatGatewayErrorSurfacesMessage(t *testing.T) {
	svc := gatewayService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited"},
		})
	})

	_, err := svc.Generate("s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestChatEmptyChoices(t *testing.T) {
	svc := gatewayService(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	_, err := svc.Generate("s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty completion")
}

func TestChatMissingAPIKey(t *testing.T) {
	t.Setenv("AI_GATEWAY_KEY", "")
	svc := NewAIGatewayService()

	_, err := svc.Generate("s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_GATEWAY_KEY")
}
