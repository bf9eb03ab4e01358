package chatclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-bot/internal/config"
	"nutrition-bot/internal/domain/chat"
	"nutrition-bot/internal/utils/platformerrors"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		OpenAIBaseURL:     baseURL,
		OpenAIAPIKey:      "sk-test",
		ChatModel:         "gpt-4o-mini",
		ChatTextTimeout:   5 * time.Second,
		ChatVisionTimeout: 10 * time.Second,
	}
}

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
}

func TestCompleteChat_SendsConversationAndReturnsFirstChoice(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody(`{"total":{"kcal":250}}`))
	}))
	defer server.Close()

	client := New(testConfig(server.URL+"/v1"), zerolog.Nop())

	content, err := client.CompleteChat(context.Background(), chat.Request{
		Messages: []openai.ChatCompletionMessage{
			chat.SystemMessage("you are a nutritionist"),
			chat.UserMessage("100g rice, 1 banana"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"total":{"kcal":250}}`, content)

	assert.Equal(t, "gpt-4o-mini", captured["model"])
	assert.NotContains(t, captured, "response_format")
	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
	assert.Equal(t, "100g rice, 1 banana", messages[1].(map[string]any)["content"])
}

func TestCompleteChat_ExplicitModelAndResponseFormat(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("{}"))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), zerolog.Nop())

	_, err := client.CompleteChat(context.Background(), chat.Request{
		Messages:       []openai.ChatCompletionMessage{chat.UserMessage("hi")},
		Model:          "gpt-4o",
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", captured["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, captured["response_format"])
}

func TestCompleteChat_NoAuthorizationWithoutKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("ok"))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.OpenAIAPIKey = ""
	client := New(cfg, zerolog.Nop())

	content, err := client.CompleteChat(context.Background(), chat.Request{
		Messages: []openai.ChatCompletionMessage{chat.UserMessage("hi")},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", content)
}

func TestCompleteChat_UpstreamErrorIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), zerolog.Nop())

	_, err := client.CompleteChat(context.Background(), chat.Request{
		Messages: []openai.ChatCompletionMessage{chat.UserMessage("hi")},
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
	assert.Contains(t, err.Error(), "429")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestCompleteChat_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer server.Close()

	client := New(testConfig(server.URL), zerolog.Nop())

	_, err := client.CompleteChat(context.Background(), chat.Request{
		Messages: []openai.ChatCompletionMessage{chat.UserMessage("hi")},
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
}

func TestCompleteChat_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := New(testConfig(baseURL), zerolog.Nop())

	_, err := client.CompleteChat(context.Background(), chat.Request{
		Messages: []openai.ChatCompletionMessage{chat.UserMessage("hi")},
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
}

func TestCompleteChat_TimeoutApplies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.ChatTextTimeout = 50 * time.Millisecond
	client := New(cfg, zerolog.Nop())

	start := time.Now()
	_, err := client.CompleteChat(context.Background(), chat.Request{
		Messages: []openai.ChatCompletionMessage{chat.UserMessage("hi")},
	})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCompleteChat_RejectsEmptyConversation(t *testing.T) {
	client := New(testConfig("http://127.0.0.1:1"), zerolog.Nop())

	_, err := client.CompleteChat(context.Background(), chat.Request{})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestTimeoutFor(t *testing.T) {
	client := New(testConfig("http://localhost"), zerolog.Nop())

	assert.Equal(t, 5*time.Second, client.timeoutFor(false))
	assert.Equal(t, 10*time.Second, client.timeoutFor(true))
}
