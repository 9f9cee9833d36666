package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pitch-assistant-team/pitch-assistant/pkg/config"
)

// GroqClient is a minimal client for the Groq speech synthesis API
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	voice   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GROQ_BASE_URL")
		if base == "" {
			base = "https://api.groq.com/openai/v1"
		}
	}

	model := "playai-tts"
	voice := "Fritz-PlayAI"
	if cfg != nil {
		if cfg.TTSModel != "" {
			model = cfg.TTSModel
		}
		if cfg.TTSVoice != "" {
			voice = cfg.TTSVoice
		}
	}

	return &GroqClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		voice:   voice,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// speechRequest is the shape for speech synthesis requests
type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	ResponseFormat string `json:"response_format"`
}

// errorResponse mirrors the API error envelope
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Synthesize converts text to speech and returns the audio bytes with their
// content type. The response body is WAV audio.
func (g *GroqClient) Synthesize(ctx context.Context, text string) ([]byte, string, error) {
	reqBody := speechRequest{
		Model:          g.model,
		Input:          text,
		Voice:          g.voice,
		ResponseFormat: "wav",
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", err
	}

	endpoint := g.baseURL + "/audio/speech"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error.Message != "" {
			return nil, "", fmt.Errorf("groq returned status %d: %s", resp.StatusCode, er.Error.Message)
		}
		return nil, "", fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if len(audio) == 0 {
		return nil, "", fmt.Errorf("empty audio response from groq")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/wav"
	}
	return audio, contentType, nil
}
