// Package storage owns the transient audio artifacts written while a stream
// or upload is being processed. Artifacts live in a local scratch directory,
// are named to avoid collisions, and are removed by whoever wrote them.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Scratch struct {
	dir string
}

func NewScratch(dir string) (*Scratch, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir %q: %w", dir, err)
	}
	return &Scratch{dir: dir}, nil
}

func (s *Scratch) Dir() string { return s.dir }

// Put writes data under a collision-free name derived from the prefix, the
// owning session/request id, and the current time. The caller owns the file
// and must Remove it on every exit path.
func (s *Scratch) Put(prefix, id string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s_%d.wav", prefix, id, time.Now().UnixMilli())
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write scratch file %q: %w", path, err)
	}
	return path, nil
}

// Remove deletes an artifact. Missing files are not an error so cleanup can
// run unconditionally on both success and failure paths.
func (s *Scratch) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
