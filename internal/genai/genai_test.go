package genai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIClient_Generate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "llama-3.3-70b-versatile",
			"choices": [{"index": 0, "finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"title\":\"Clean\"}"}}]
		}`)
	}))
	defer srv.Close()

	g, err := New(Options{
		Provider:    ProviderGroq,
		Model:       "llama-3.3-70b-versatile",
		APIKey:      "test-key",
		BaseURL:     srv.URL + "/",
		Temperature: 0.3,
		MaxTokens:   4000,
	})
	require.NoError(t, err)

	out, err := g.Generate(context.Background(), Request{System: "be concise", Prompt: "transform this"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Clean"}`, out)

	assert.Equal(t, "llama-3.3-70b-versatile", got["model"])
	assert.InDelta(t, 0.3, got["temperature"], 1e-9)
	assert.EqualValues(t, 4000, got["max_tokens"])
	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
	assert.Equal(t, "transform this", msgs[1].(map[string]any)["content"])
}

func TestOpenAIClient_ServerErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"message":"boom"}}`)
	}))
	defer srv.Close()

	g := NewOpenAI(Options{Model: "m", APIKey: "k", BaseURL: srv.URL + "/"})
	_, err := g.Generate(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	}))
	defer srv.Close()

	g := NewOpenAI(Options{Model: "m", APIKey: "k", BaseURL: srv.URL + "/"})
	_, err := g.Generate(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestAnthropicClient_Generate(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "{\"title\":"}, {"type": "text", "text": "\"Clean\"}"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`)
	}))
	defer srv.Close()

	g, err := New(Options{
		Provider:    ProviderAnthropic,
		Model:       "claude-haiku-4-5",
		APIKey:      "k",
		BaseURL:     srv.URL + "/",
		Temperature: 0.3,
	})
	require.NoError(t, err)

	out, err := g.Generate(context.Background(), Request{System: "sys", Prompt: "user"})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"Clean"}`, out)
	assert.EqualValues(t, defaultAnthropicMaxTokens, got["max_tokens"])
	assert.Equal(t, "claude-haiku-4-5", got["model"])
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Options{Provider: ProviderGroq})
	assert.ErrorContains(t, err, "API key is required")

	_, err = New(Options{Provider: "mystery", APIKey: "k"})
	assert.ErrorContains(t, err, "unknown provider")
}

func TestNew_WrapsLimiter(t *testing.T) {
	g, err := New(Options{Provider: ProviderOpenAI, APIKey: "k", Model: "m", RequestsPerMinute: 30})
	require.NoError(t, err)
	_, ok := g.(*Limited)
	assert.True(t, ok, "expected rate-limited generator, got %T", g)
}

type countingGenerator struct{ calls atomic.Int32 }

func (c *countingGenerator) Generate(ctx context.Context, req Request) (string, error) {
	c.calls.Add(1)
	return "ok", nil
}

func TestLimited_CancelledWhileWaiting(t *testing.T) {
	inner := &countingGenerator{}
	l := NewLimited(inner, 1)

	_, err := l.Generate(context.Background(), Request{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Generate(ctx, Request{})
	require.Error(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
}
