package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLimited_Error(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLimited(zap.New(core), 5)

	for i := 0; i < 12; i++ {
		l.Error("REQUEST_DENIED", "Geocoding API error")
	}

	require.Equal(t, 6, logs.Len())
	assert.Equal(t, 5, logs.FilterLevelExact(zapcore.ErrorLevel).Len())

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0].Message, "suppressed")
	assert.Equal(t, 6, l.Count("REQUEST_DENIED"))
}

func TestLimited_CategoriesAreIndependent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLimited(zap.New(core), 2)

	l.Error("A", "a")
	l.Error("A", "a")
	l.Error("A", "a")
	l.Error("B", "b")

	assert.Equal(t, 2, logs.FilterField(zap.String("category", "A")).FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 1, logs.FilterField(zap.String("category", "B")).Len())
}

func TestLimited_WarnOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLimited(zap.New(core), 5)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.WarnOnce("missing_key", "GOOGLE_MAPS_API_KEY not set")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, logs.FilterMessage("GOOGLE_MAPS_API_KEY not set").Len())
}
