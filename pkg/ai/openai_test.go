package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pitch-assistant-team/pitch-assistant/pkg/config"
)

func TestChatJSON_RequestsJSONMode(t *testing.T) {
	var captured struct {
		Model          string `json:"model"`
		ResponseFormat *struct {
			Type string `json:"type"`
		} `json:"response_format"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"slides\":[]}"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})

	got, err := client.ChatJSON(context.Background(), "system prompt", "user prompt", 0.5)
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if got != `{"slides":[]}` {
		t.Fatalf("unexpected content %q", got)
	}

	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_object" {
		t.Fatalf("response_format not set to json_object: %+v", captured.ResponseFormat)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" || captured.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages %+v", captured.Messages)
	}
}

func TestChat_OmitsResponseFormat(t *testing.T) {
	var sawResponseFormat bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, sawResponseFormat = body["response_format"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"sure"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(&config.OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL})

	if _, err := client.Chat(context.Background(), "system", nil, "hello", 0.7); err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if sawResponseFormat {
		t.Fatalf("multi-turn chat must not force JSON mode")
	}
}
