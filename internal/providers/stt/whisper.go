package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/mellah-kais/cnam-server/internal/prompts"
)

// Whisper talks to a Whisper-compatible ASR endpoint over multipart POST.
// The backend zoo (whisper.cpp servers, faster-whisper, Vosk bridges) is not
// consistent about response shapes, so the reply is normalized here.
type Whisper struct {
	endpoint string
	client   *http.Client
}

type WhisperConfig struct {
	Endpoint string
	Timeout  time.Duration // transcription of long buffers can take minutes
}

func NewWhisper(cfg WhisperConfig) *Whisper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &Whisper{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (w *Whisper) Close() error { return nil }

func (w *Whisper) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("audio", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := fw.Write(audio); err != nil {
		return "", fmt.Errorf("write audio data: %w", err)
	}
	if language != "" {
		if err := mw.WriteField("language", language); err != nil {
			return "", fmt.Errorf("write language field: %w", err)
		}
		if err := mw.WriteField("initial_prompt", prompts.InitialPrompt(language)); err != nil {
			return "", fmt.Errorf("write initial_prompt field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("asr request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read asr response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("asr returned %d: %s", resp.StatusCode, string(raw))
	}

	return normalizeResponse(raw), nil
}

// normalizeResponse folds the known backend reply shapes into plain text:
// a bare string, {"text": ...}, {"transcription": ...}, or anything else
// passed through verbatim as its JSON serialization.
func normalizeResponse(raw []byte) string {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var asObject struct {
		Text          *string `json:"text"`
		Transcription *string `json:"transcription"`
	}
	if err := json.Unmarshal(raw, &asObject); err == nil {
		switch {
		case asObject.Text != nil:
			return *asObject.Text
		case asObject.Transcription != nil:
			return *asObject.Transcription
		}
	}

	// unknown JSON shapes and plain-text bodies come back verbatim
	return string(raw)
}
