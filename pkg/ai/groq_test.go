package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pitch-assistant-team/pitch-assistant/pkg/config"
)

func TestSynthesize_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if r.URL.Path != "/audio/speech" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("missing bearer auth: %q", r.Header.Get("Authorization"))
		}
		var payload speechRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Model != "playai-tts" || payload.Voice != "Fritz-PlayAI" {
			t.Fatalf("unexpected model/voice %q/%q", payload.Model, payload.Voice)
		}
		if payload.ResponseFormat != "wav" {
			t.Fatalf("unexpected response format %q", payload.ResponseFormat)
		}
		if payload.Input != "Hello there" {
			t.Fatalf("unexpected input %q", payload.Input)
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("RIFF-fake-wav"))
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{
		APIKey:   "test-key",
		BaseURL:  ts.URL,
		TTSModel: "playai-tts",
		TTSVoice: "Fritz-PlayAI",
	})

	audio, contentType, err := client.Synthesize(context.Background(), "Hello there")
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if string(audio) != "RIFF-fake-wav" {
		t.Fatalf("unexpected audio %q", audio)
	}
	if contentType != "audio/wav" {
		t.Fatalf("unexpected content type %q", contentType)
	}
}

func TestSynthesize_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "rate limit exceeded"},
		})
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})

	_, _, err := client.Synthesize(context.Background(), "Hello")
	if err == nil {
		t.Fatalf("expected error for 429")
	}
	if got := err.Error(); got != "groq returned status 429: rate limit exceeded" {
		t.Fatalf("unexpected error %q", got)
	}
}

func TestSynthesize_EmptyBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, _, err := client.Synthesize(context.Background(), "Hello"); err == nil {
		t.Fatalf("expected error for empty audio body")
	}
}

func TestSynthesize_DefaultContentType(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suppress the sniffed Content-Type so the client default applies.
		w.Header()["Content-Type"] = nil
		w.Write([]byte("audio-bytes"))
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})

	_, contentType, err := client.Synthesize(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("synthesize failed: %v", err)
	}
	if contentType != "audio/wav" {
		t.Fatalf("default content type %q want audio/wav", contentType)
	}
}
