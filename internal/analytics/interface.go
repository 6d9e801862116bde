package analytics

import "context"

// Recorder persists the outcome of scheduling passes. The daemon writes
// a record after every pass; the HTTP API reads back the latest one.
type Recorder interface {
	RecordPass(ctx context.Context, record PassRecord) error
	LastPass(ctx context.Context) (*PassRecord, error)
}
