package repository

import (
	"context"

	"github.com/location-quest/internal/domain"
)

// StreamRepository wraps Redis Streams consumer groups.
type StreamRepository interface {
	CreateConsumerGroup(ctx context.Context, stream, group string) error
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)
	AckMessages(ctx context.Context, stream, group string, ids []string) error
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
