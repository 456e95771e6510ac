package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/location-quest/internal/usecase"
	"github.com/location-quest/internal/usecase/dto"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type checker struct {
	err      error
	deadline bool
}

func (c *checker) Health(ctx context.Context) error {
	_, c.deadline = ctx.Deadline()
	return c.err
}

func TestHealthUseCase_Status(t *testing.T) {
	db := &checker{}
	redis := &checker{err: assert.AnError}
	uc := usecase.NewHealthUseCase(db, redis, zap.NewNop())

	status := uc.Status(context.Background(), "trace-1")

	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "trace-1", status.TraceID)
	assert.True(t, status.Database.Connected)
	assert.False(t, status.Redis.Connected)
	assert.True(t, db.deadline, "ping should run with a timeout")
	assert.GreaterOrEqual(t, status.Uptime, 0.0)
}

func TestHealthUseCase_NilCheckersReportDisconnected(t *testing.T) {
	uc := usecase.NewHealthUseCase(nil, nil, zap.NewNop())

	status := uc.Status(context.Background(), "")

	assert.Equal(t, "ok", status.Status)
	assert.False(t, status.Database.Connected)
	assert.False(t, status.Redis.Connected)
}

func TestNFCUseCase_ReadDefaultsTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 123000000, time.UTC)
	uc := usecase.NewNFCUseCase(zap.NewNop())
	uc.SetClock(func() time.Time { return now })

	resp := uc.Read(context.Background(), "", dto.NFCReadRequest{NFCID: "nfc-003"})

	assert.Equal(t, "nfc-003", resp.NFCID)
	assert.Equal(t, "2024-05-01T09:30:00.123Z", resp.Timestamp)
	assert.Equal(t, now, resp.ReceivedAt)
}

func TestNFCUseCase_ReadKeepsDeviceTimestamp(t *testing.T) {
	uc := usecase.NewNFCUseCase(zap.NewNop())

	resp := uc.Read(context.Background(), "t", dto.NFCReadRequest{
		NFCID:      "nfc-004",
		TagType:    "NTAG215",
		Timestamp:  "2024-01-01T00:00:00Z",
		DeviceInfo: &dto.DeviceInfo{Platform: "Android"},
	})

	assert.Equal(t, "2024-01-01T00:00:00Z", resp.Timestamp)
	assert.Equal(t, "NTAG215", resp.TagType)
}
