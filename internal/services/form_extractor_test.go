package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mellah-kais/cnam-server/internal/logger"
	"github.com/mellah-kais/cnam-server/internal/models"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

type fakeLLM struct {
	calls      int
	completion string
	err        error
	lastPrompt string
}

func (f *fakeLLM) Complete(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.completion, f.err
}

func (f *fakeLLM) Close() error { return nil }

func newExtractor(l *fakeLLM) *FormExtractor {
	return NewFormExtractor(l, nil, 0, logger.New())
}

func TestExtractParsesProseWrappedJSON(t *testing.T) {
	l := &fakeLLM{completion: `Sure! Here is the JSON you asked for:
{"intent": "CREATE_BULLETIN", "entities": {"patientName": "Ahmed", "acts": ["SC33"]}}
Let me know if you need anything else.`}

	data, err := newExtractor(l).Extract(context.Background(), "nheb nzid bulletin l-Ahmed acte SC33", "ar")
	require.NoError(t, err)
	require.Equal(t, models.IntentCreateBulletin, data.Intent)
	require.NotNil(t, data.Entities.PatientName)
	require.Equal(t, "Ahmed", *data.Entities.PatientName)
	require.Equal(t, []string{"SC33"}, data.Entities.Acts)
	require.Nil(t, data.Entities.CIN)
}

func TestExtractPromptEmbedsTranscript(t *testing.T) {
	l := &fakeLLM{completion: `{"intent": "NAVIGATE", "entities": {"destination": "Dashboard"}}`}

	_, err := newExtractor(l).Extract(context.Background(), "aller au tableau de bord", "fr")
	require.NoError(t, err)
	require.Contains(t, l.lastPrompt, `Transcript: "aller au tableau de bord"`)
	require.Contains(t, l.lastPrompt, "SC17")
}

func TestExtractNoJSONFound(t *testing.T) {
	l := &fakeLLM{completion: "I could not understand the transcript, sorry."}

	_, err := newExtractor(l).Extract(context.Background(), "blah", "en")
	require.True(t, utils.IsCode(err, utils.CodeNoJSONFound), "got %v", err)
}

func TestExtractMalformedJSON(t *testing.T) {
	cases := []string{
		`{"intent": "CREATE_BULLETIN", "entities": `, // truncated, never balanced
		`{"intent": "MAKE_COFFEE", "entities": {}}`,  // unknown intent
		`{"intent": 42}`,                             // wrong types
	}
	for _, completion := range cases {
		l := &fakeLLM{completion: completion}
		_, err := newExtractor(l).Extract(context.Background(), "x", "en")
		require.True(t, utils.IsCode(err, utils.CodeMalformedJSON), "completion %q: got %v", completion, err)
	}
}

func TestExtractBackendFailure(t *testing.T) {
	l := &fakeLLM{err: errors.New("connection refused")}

	_, err := newExtractor(l).Extract(context.Background(), "x", "en")
	require.True(t, utils.IsCode(err, utils.CodeExtractionFailed))
	require.Contains(t, err.Error(), "connection refused")
}

func TestFirstJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{`noise {"a":{"b":2}} trailing {"c":3}`, `{"a":{"b":2}}`, true},
		{`{"s":"brace } inside"}`, `{"s":"brace } inside"}`, true},
		{`{"s":"esc \" quote }"} rest`, `{"s":"esc \" quote }"}`, true},
		{`no object here`, ``, false},
		{`{"never": "closed"`, ``, false},
	}
	for _, tc := range cases {
		got, ok := firstJSONObject(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		require.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
