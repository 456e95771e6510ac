package worker

import (
	"context"
)

// Worker is a long-running background process managed by WorkerManager.
type Worker interface {
	// Start runs the worker until Stop is called or ctx is done.
	Start(ctx context.Context) error

	Stop() error

	Name() string
}
