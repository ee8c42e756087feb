package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mellah-kais/cnam-server/internal/cache"
	"github.com/mellah-kais/cnam-server/internal/models"
	"github.com/mellah-kais/cnam-server/internal/prompts"
	"github.com/mellah-kais/cnam-server/internal/providers/llm"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

// FormExtractor turns a transcript into a structured clinical-form record via
// a single deterministic LLM completion. Results are cached by transcript so
// repeated dictations of the same phrase skip the model entirely.
type FormExtractor struct {
	llm    llm.Provider
	cache  cache.Cache // optional
	ttl    time.Duration
	logger *logrus.Logger
}

func NewFormExtractor(provider llm.Provider, c cache.Cache, ttl time.Duration, logger *logrus.Logger) *FormExtractor {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &FormExtractor{llm: provider, cache: c, ttl: ttl, logger: logger}
}

func (e *FormExtractor) Extract(ctx context.Context, transcript, language string) (*models.FormData, error) {
	const op = "FormExtractor.Extract"

	if strings.TrimSpace(transcript) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "transcript is required", nil)
	}
	if language == "" {
		language = prompts.DefaultLanguage
	}

	key := cacheKey(transcript, language)
	if e.cache != nil {
		var cached models.FormData
		if hit, err := e.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	start := time.Now()
	completion, err := e.llm.Complete(ctx, prompts.Generate(transcript, language))
	if err != nil {
		return nil, utils.E(utils.CodeExtractionFailed, op, "completion backend failed", err)
	}

	data, err := parseFormData(completion)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"intent":     data.Intent,
		"language":   language,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("form extracted")

	if e.cache != nil {
		_ = e.cache.SetJSON(ctx, key, data, e.ttl)
	}
	return data, nil
}

func cacheKey(transcript, language string) string {
	sum := sha256.Sum256([]byte(transcript))
	return "extract:" + language + ":" + hex.EncodeToString(sum[:])
}

// parseFormData locates the first balanced {...} span in the completion and
// decodes it. Models routinely wrap the object in prose; anything outside the
// span is ignored.
func parseFormData(completion string) (*models.FormData, error) {
	const op = "FormExtractor.Extract"

	span, ok := firstJSONObject(completion)
	if !ok {
		if !strings.Contains(completion, "{") {
			return nil, utils.E(utils.CodeNoJSONFound, op, "no JSON object in completion: "+completion, nil)
		}
		return nil, utils.E(utils.CodeMalformedJSON, op, "unbalanced JSON object in completion: "+completion, nil)
	}

	var data models.FormData
	if err := json.Unmarshal([]byte(span), &data); err != nil {
		return nil, utils.E(utils.CodeMalformedJSON, op, "completion JSON does not match the form shape: "+completion, err)
	}
	if !data.Intent.Valid() {
		return nil, utils.E(utils.CodeMalformedJSON, op, "unknown intent in completion: "+string(data.Intent), nil)
	}
	return &data, nil
}

// firstJSONObject scans for the first '{' and returns the substring up to its
// matching '}'. Braces inside JSON strings are not counted.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
