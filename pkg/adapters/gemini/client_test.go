package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/scribe/pkg/adapters/gemini"
	"github.com/aretw0/scribe/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(150), body["generationConfig"].(map[string]any)["maxOutputTokens"])
		sys := body["systemInstruction"].(map[string]any)["parts"].([]any)[0].(map[string]any)
		assert.Equal(t, "be brief", sys["text"])

		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello "},{"text":"world"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	c := gemini.New("secret", gemini.WithBaseURL(srv.URL), gemini.WithModel("test-model"))
	text, err := c.Complete(context.Background(), ports.CompletionRequest{
		System:    "be brief",
		Prompt:    "say hello",
		MaxTokens: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		empty  bool
	}{
		{"http error", http.StatusTooManyRequests, `{"error":{"message":"quota"}}`, false},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, true},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`, true},
		{"empty parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := gemini.New("k", gemini.WithBaseURL(srv.URL)).Complete(context.Background(), ports.CompletionRequest{Prompt: "x"})
			require.Error(t, err)
			if tt.empty {
				assert.ErrorIs(t, err, gemini.ErrEmptyResponse)
			} else {
				assert.Contains(t, err.Error(), "429")
			}
		})
	}
}
