package llm

import "context"

type Provider interface {
	// Complete runs a single deterministic text completion for prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}
