package stt

import "context"

type Provider interface {
	// Transcribe converts a complete audio artifact (WAV bytes) to plain text.
	// An empty string is a valid outcome meaning no speech was recognized.
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
	Close() error
}
