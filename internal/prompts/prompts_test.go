package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateEmbedsTranscriptAndCodes(t *testing.T) {
	p := Generate("nheb nzid bulletin", "ar")

	require.Contains(t, p, `Transcript: "nheb nzid bulletin"`)
	require.Contains(t, p, "SC17")
	require.Contains(t, p, "DC20")
	require.Contains(t, p, "CREATE_BULLETIN, CREATE_PATIENT, SEARCH_PATIENT, NAVIGATE")
	require.True(t, strings.HasPrefix(p, "[INST] "))
	require.True(t, strings.HasSuffix(p, "JSON:"))
}

func TestGenerateRolePerLanguage(t *testing.T) {
	require.Contains(t, Generate("x", "fr"), "assistant médical")
	require.Contains(t, Generate("x", "en"), "You are a medical assistant.")
	// unknown language falls back to the default role
	require.Contains(t, Generate("x", "de"), "Tunisian medical assistant")
}

func TestInitialPromptFallback(t *testing.T) {
	require.Contains(t, InitialPrompt("fr"), "bulletin de soins")
	require.Equal(t, InitialPrompt("ar"), InitialPrompt("zz"))
}
