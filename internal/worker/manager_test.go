package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type loopWorker struct {
	*BaseWorker
	started atomic.Bool
	ignore  bool
}

func (w *loopWorker) Start(ctx context.Context) error {
	w.started.Store(true)
	if w.ignore {
		select {}
	}
	select {
	case <-w.StopChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestWorkerManager_StartRequiresWorkers(t *testing.T) {
	m := NewWorkerManager(time.Second, zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartAndStop(t *testing.T) {
	m := NewWorkerManager(time.Second, zap.NewNop())
	a := &loopWorker{BaseWorker: NewBaseWorker("a", "g", zap.NewNop())}
	b := &loopWorker{BaseWorker: NewBaseWorker("b", "g", zap.NewNop())}
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, func() bool { return a.started.Load() && b.started.Load() }, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_StopTimesOut(t *testing.T) {
	m := NewWorkerManager(20*time.Millisecond, zap.NewNop())
	stuck := &loopWorker{BaseWorker: NewBaseWorker("stuck", "g", zap.NewNop()), ignore: true}
	m.Register(stuck)

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, stuck.started.Load, time.Second, 5*time.Millisecond)

	assert.Error(t, m.Stop())
}

func TestBaseWorker_StopIsIdempotent(t *testing.T) {
	w := NewBaseWorker("x", "g", zap.NewNop())
	assert.Equal(t, "x", w.Name())
	assert.Equal(t, "g", w.ConsumerGroup())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())

	select {
	case <-w.StopChan():
	default:
		t.Fatal("stop channel not closed")
	}
}
