package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Limited caps how often each category of message is logged. The first
// limit occurrences of a category are logged at error level, the next one
// produces a single suppression warning, the rest are dropped.
type Limited struct {
	logger *zap.Logger
	limit  int

	mu     sync.Mutex
	counts map[string]int
	once   map[string]struct{}
}

func NewLimited(logger *zap.Logger, limit int) *Limited {
	if limit <= 0 {
		limit = 1
	}
	return &Limited{
		logger: logger,
		limit:  limit,
		counts: make(map[string]int),
		once:   make(map[string]struct{}),
	}
}

// Error logs msg under category unless the category is exhausted.
func (l *Limited) Error(category, msg string, fields ...zap.Field) {
	l.mu.Lock()
	count := l.counts[category]
	if count <= l.limit {
		l.counts[category] = count + 1
	}
	l.mu.Unlock()

	switch {
	case count < l.limit:
		l.logger.Error(msg, append(fields, zap.String("category", category))...)
	case count == l.limit:
		l.logger.Warn("Error occurred too many times, further occurrences will be suppressed",
			zap.String("category", category),
			zap.Int("occurrences", l.limit))
	}
}

// WarnOnce logs msg the first time key is seen.
func (l *Limited) WarnOnce(key, msg string, fields ...zap.Field) {
	l.mu.Lock()
	_, seen := l.once[key]
	if !seen {
		l.once[key] = struct{}{}
	}
	l.mu.Unlock()

	if !seen {
		l.logger.Warn(msg, fields...)
	}
}

// Count reports how many times category has been seen, capped at limit+1.
func (l *Limited) Count(category string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[category]
}
