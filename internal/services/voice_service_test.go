package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mellah-kais/cnam-server/internal/logger"
	"github.com/mellah-kais/cnam-server/internal/models"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

type fakeSTT struct {
	calls int
	text  string
	err   error
}

func (f *fakeSTT) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

func (f *fakeSTT) Close() error { return nil }

func writeArtifact(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.wav")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestProcessVoiceToFormFull(t *testing.T) {
	sttStub := &fakeSTT{text: "ajouter un bulletin pour Jean avec l'acte SC17"}
	llmStub := &fakeLLM{completion: `{"intent": "CREATE_BULLETIN", "entities": {"patientName": "Jean", "acts": ["SC17"]}}`}
	svc := NewVoiceService(sttStub, newExtractor(llmStub), logger.New())

	path := writeArtifact(t, []byte{1, 2, 3})
	res, err := svc.ProcessVoiceToForm(context.Background(), path, "rec.wav", 3, "fr")
	require.NoError(t, err)
	require.Equal(t, "ajouter un bulletin pour Jean avec l'acte SC17", res.Transcript)
	require.Equal(t, models.IntentCreateBulletin, res.Data.Intent)
	require.Equal(t, 1, sttStub.calls)
	require.Equal(t, 1, llmStub.calls)
}

func TestEmptyTranscriptSkipsExtraction(t *testing.T) {
	for _, text := range []string{"", "   \n\t "} {
		sttStub := &fakeSTT{text: text}
		llmStub := &fakeLLM{completion: `{"intent": "NAVIGATE", "entities": {}}`}
		svc := NewVoiceService(sttStub, newExtractor(llmStub), logger.New())

		path := writeArtifact(t, []byte{1})
		_, err := svc.ProcessVoiceToForm(context.Background(), path, "rec.wav", 1, "ar")
		require.True(t, utils.IsCode(err, utils.CodeNoSpeech), "text %q: got %v", text, err)
		require.Equal(t, 0, llmStub.calls, "extraction must not run on empty transcript")
	}
}

func TestTranscriptionFailurePropagates(t *testing.T) {
	sttStub := &fakeSTT{err: errors.New("asr returned 500: model exploded")}
	llmStub := &fakeLLM{}
	svc := NewVoiceService(sttStub, newExtractor(llmStub), logger.New())

	path := writeArtifact(t, []byte{1})
	_, err := svc.ProcessVoiceToForm(context.Background(), path, "rec.wav", 1, "ar")
	require.True(t, utils.IsCode(err, utils.CodeTranscriptionFailed))
	require.Contains(t, err.Error(), "model exploded")
	require.Equal(t, 0, llmStub.calls)
}

func TestTranscribeOnlyTrims(t *testing.T) {
	sttStub := &fakeSTT{text: "  bonjour  "}
	svc := NewVoiceService(sttStub, newExtractor(&fakeLLM{}), logger.New())

	path := writeArtifact(t, []byte{1})
	text, err := svc.TranscribeOnly(context.Background(), path, "fr")
	require.NoError(t, err)
	require.Equal(t, "bonjour", text)
}

func TestEmptyArtifactRejected(t *testing.T) {
	svc := NewVoiceService(&fakeSTT{}, newExtractor(&fakeLLM{}), logger.New())

	path := writeArtifact(t, nil)
	_, err := svc.TranscribeOnly(context.Background(), path, "fr")
	require.True(t, utils.IsCode(err, utils.CodeNoAudio))
}
