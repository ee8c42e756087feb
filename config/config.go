package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries all backend endpoints and tuning knobs. Everything comes
// from the environment with defaults matching the docker-compose layout.
type Config struct {
	Port string

	// Transcription backend
	STTProvider string // whisper|google
	WhisperURL  string

	// Extraction backend
	LLMProvider     string // ollama|vertex
	OllamaURL       string
	OllamaModel     string
	GoogleProjectID string
	GoogleLocation  string
	VertexModel     string

	JWTSecret string
	UploadDir string

	TranscribeTimeout time.Duration
	ExtractTimeout    time.Duration
	ExtractCacheTTL   time.Duration

	// Streaming partial-pass policy
	PartialInterval time.Duration
	PartialMinBytes int
}

func Load() *Config {
	return &Config{
		Port: getenv("PORT", "3001"),

		STTProvider: getenv("STT_PROVIDER", "whisper"),
		WhisperURL:  getenv("WHISPER_URL", "http://172.17.0.1:9000/asr"),

		LLMProvider:     getenv("LLM_PROVIDER", "ollama"),
		OllamaURL:       getenv("OLLAMA_URL", "http://172.17.0.1:11434/api/generate"),
		OllamaModel:     getenv("OLLAMA_MODEL", "qwen2.5:0.5b-instruct-q4_0"),
		GoogleProjectID: os.Getenv("GOOGLE_PROJECT_ID"),
		GoogleLocation:  getenv("GOOGLE_LOCATION", "europe-west1"),
		VertexModel:     getenv("VERTEX_MODEL", "gemini-1.5-flash"),

		JWTSecret: getenv("JWT_SECRET", "secret"),
		UploadDir: getenv("UPLOAD_DIR", "uploads"),

		TranscribeTimeout: getduration("TRANSCRIBE_TIMEOUT", 2*time.Minute),
		ExtractTimeout:    getduration("EXTRACT_TIMEOUT", 30*time.Second),
		ExtractCacheTTL:   getduration("EXTRACT_CACHE_TTL", time.Hour),

		PartialInterval: getduration("PARTIAL_INTERVAL", 5*time.Second),
		PartialMinBytes: getint("PARTIAL_MIN_BYTES", 32000),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
