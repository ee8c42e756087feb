package services

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mellah-kais/cnam-server/internal/models"
	"github.com/mellah-kais/cnam-server/internal/providers/stt"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

// VoiceService is the two-stage voice pipeline: transcription, then form
// extraction. TranscribeOnly serves the low-latency partial passes of a live
// stream; ProcessVoiceToForm serves uploads and stream-final passes.
//
// The service reads audio artifacts it is handed but never deletes them;
// scratch files belong to whoever wrote them.
type VoiceService interface {
	ProcessVoiceToForm(ctx context.Context, path, originalName string, size int64, language string) (*models.VoiceFormResult, error)
	TranscribeOnly(ctx context.Context, path, language string) (string, error)
}

type voiceService struct {
	stt       stt.Provider
	extractor *FormExtractor
	logger    *logrus.Logger
}

func NewVoiceService(provider stt.Provider, extractor *FormExtractor, logger *logrus.Logger) VoiceService {
	return &voiceService{stt: provider, extractor: extractor, logger: logger}
}

func (s *voiceService) ProcessVoiceToForm(ctx context.Context, path, originalName string, size int64, language string) (*models.VoiceFormResult, error) {
	const op = "VoiceService.ProcessVoiceToForm"

	start := time.Now()
	log := s.logger.WithFields(logrus.Fields{
		"file":     originalName,
		"size":     size,
		"language": language,
	})
	log.Info("voice-to-form request")

	text, err := s.transcribeFile(ctx, op, path, language)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, utils.E(utils.CodeNoSpeech, op, "no speech detected", nil)
	}
	log.WithField("transcript", text).Debug("transcription done")

	data, err := s.extractor.Extract(ctx, text, language)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"intent":   data.Intent,
		"total_ms": time.Since(start).Milliseconds(),
	}).Info("voice-to-form done")

	return &models.VoiceFormResult{Transcript: text, Data: *data}, nil
}

func (s *voiceService) TranscribeOnly(ctx context.Context, path, language string) (string, error) {
	const op = "VoiceService.TranscribeOnly"
	return s.transcribeFile(ctx, op, path, language)
}

func (s *voiceService) transcribeFile(ctx context.Context, op, path, language string) (string, error) {
	audioBytes, err := os.ReadFile(path)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to read audio artifact", err)
	}
	if len(audioBytes) == 0 {
		return "", utils.E(utils.CodeNoAudio, op, "audio artifact is empty", nil)
	}

	text, err := s.stt.Transcribe(ctx, audioBytes, language)
	if err != nil {
		return "", utils.E(utils.CodeTranscriptionFailed, op, "transcription backend failed", err)
	}
	return strings.TrimSpace(text), nil
}
