package usecase

import (
	"context"
	"os"
	"time"

	"github.com/location-quest/internal/usecase/dto"
	"go.uber.org/zap"
)

// HealthChecker is implemented by the database and Redis wrappers.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthUseCase struct {
	db      HealthChecker
	redis   HealthChecker
	started time.Time
	logger  *zap.Logger
}

// NewHealthUseCase builds the health reporter. Either checker may be nil,
// which reports that component as disconnected.
func NewHealthUseCase(db, redis HealthChecker, logger *zap.Logger) *HealthUseCase {
	return &HealthUseCase{db: db, redis: redis, started: time.Now(), logger: logger}
}

// Status always reports "ok"; component failures only flip their flags.
func (uc *HealthUseCase) Status(ctx context.Context, traceID string) *dto.HealthResponse {
	hostname, _ := os.Hostname()
	return &dto.HealthResponse{
		Status:    "ok",
		Uptime:    time.Since(uc.started).Seconds(),
		Hostname:  hostname,
		Timestamp: time.Now().UTC(),
		Database:  dto.ComponentStatus{Connected: uc.ping(ctx, "database", uc.db)},
		Redis:     dto.ComponentStatus{Connected: uc.ping(ctx, "redis", uc.redis)},
		TraceID:   traceID,
	}
}

func (uc *HealthUseCase) ping(ctx context.Context, name string, c HealthChecker) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := c.Health(ctx); err != nil {
		uc.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
		return false
	}
	return true
}

type NFCUseCase struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewNFCUseCase(logger *zap.Logger) *NFCUseCase {
	return &NFCUseCase{logger: logger, now: time.Now}
}

// Read records a tag read reported by a device. Nothing is persisted.
func (uc *NFCUseCase) Read(_ context.Context, traceID string, req dto.NFCReadRequest) *dto.NFCReadResponse {
	received := uc.now().UTC()
	timestamp := req.Timestamp
	if timestamp == "" {
		timestamp = received.Format(time.RFC3339Nano)
	}

	fields := []zap.Field{
		zap.String("nfc_id", req.NFCID),
		zap.String("tag_type", req.TagType),
		zap.String("timestamp", timestamp),
		zap.String("trace_id", traceID),
	}
	if d := req.DeviceInfo; d != nil {
		fields = append(fields,
			zap.String("platform", d.Platform),
			zap.String("model", d.Model),
			zap.String("os_version", d.OSVersion))
	}
	uc.logger.Info("NFC tag read", fields...)

	return &dto.NFCReadResponse{
		NFCID:      req.NFCID,
		TagType:    req.TagType,
		Timestamp:  timestamp,
		ReceivedAt: received,
	}
}
