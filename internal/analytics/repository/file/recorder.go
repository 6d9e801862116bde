package file

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"todoist-scheduler/internal/analytics"
	pkgLog "todoist-scheduler/pkg/log"
)

// implRecorder appends pass records to a JSON-lines history file and keeps
// the most recent record in memory for status queries.
type implRecorder struct {
	path string
	l    pkgLog.Logger

	mu   sync.Mutex
	last *analytics.PassRecord
}

// New creates a file-backed pass recorder. The history file is created on
// the first recorded pass.
func New(path string, l pkgLog.Logger) analytics.Recorder {
	return &implRecorder{
		path: path,
		l:    l,
	}
}

func (r *implRecorder) RecordPass(ctx context.Context, record analytics.PassRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(record)
	if err != nil {
		r.l.Errorf(ctx, "analytics.RecordPass marshal: %v", err)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		r.l.Errorf(ctx, "analytics.RecordPass mkdir: %v", err)
		return err
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		r.l.Errorf(ctx, "analytics.RecordPass open: %v", err)
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		r.l.Errorf(ctx, "analytics.RecordPass write: %v", err)
		return err
	}

	r.last = &record
	return nil
}

func (r *implRecorder) LastPass(ctx context.Context) (*analytics.PassRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last != nil {
		rec := *r.last
		return &rec, nil
	}

	// Cold start: recover the latest record from the history file.
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var last *analytics.PassRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		var rec analytics.PassRecord
		if err := dec.Decode(&rec); err != nil {
			break
		}
		last = &rec
	}

	r.last = last
	if last == nil {
		return nil, nil
	}
	rec := *last
	return &rec, nil
}
