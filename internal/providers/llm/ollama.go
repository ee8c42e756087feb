package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Ollama calls a local /api/generate completion endpoint. Sampling is pinned
// deterministic (temperature 0) and output is capped: the extraction prompt
// expects one small JSON object back, nothing more.
type Ollama struct {
	endpoint string
	model    string
	client   *http.Client
}

type OllamaConfig struct {
	Endpoint string
	Model    string
	Timeout  time.Duration // prompts are short and output capped, keep this tight
}

type ollamaRequest struct {
	Model     string        `json:"model"`
	Prompt    string        `json:"prompt"`
	Stream    bool          `json:"stream"`
	KeepAlive int           `json:"keep_alive"`
	Options   ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
	NumThread   int     `json:"num_thread"`
	TopP        float64 `json:"top_p"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func NewOllama(cfg OllamaConfig) *Ollama {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Ollama{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (o *Ollama) Close() error { return nil }

func (o *Ollama) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(ollamaRequest{
		Model:     o.model,
		Prompt:    prompt,
		Stream:    false,
		KeepAlive: 0,
		Options: ollamaOptions{
			NumPredict:  250,
			Temperature: 0,
			NumThread:   4,
			TopP:        0.1,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, string(raw))
	}

	var out ollamaResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("parse completion response: %w", err)
	}
	return out.Response, nil
}
