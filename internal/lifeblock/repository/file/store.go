package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"todoist-scheduler/internal/lifeblock"
	pkgLog "todoist-scheduler/pkg/log"
)

type implStore struct {
	path string
	l    pkgLog.Logger
	mu   sync.Mutex
}

// New creates a JSON-file-backed life-block store.
func New(path string, l pkgLog.Logger) lifeblock.Repository {
	return &implStore{
		path: path,
		l:    l,
	}
}

func (s *implStore) GetBlocks(ctx context.Context) (lifeblock.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lifeblock.State{}, nil
		}
		return lifeblock.State{}, fmt.Errorf("failed to read life blocks file: %w", err)
	}

	var state lifeblock.State
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt blocks file must not take the scheduler down.
		s.l.Warnf(ctx, "life blocks: corrupt file %s, treating as empty: %v", s.path, err)
		return lifeblock.State{}, nil
	}
	return state, nil
}

func (s *implStore) SaveBlocks(ctx context.Context, state lifeblock.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal life blocks: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create life blocks dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write life blocks file: %w", err)
	}
	return nil
}
