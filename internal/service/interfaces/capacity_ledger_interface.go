package interfaces

import (
	"context"
	"time"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/store/models"
)

// RedisLedgerInterface is the raw hash adapter over the two ledger keys.
type RedisLedgerInterface interface {
	GetSnapshot(ctx context.Context, key string) (models.CapacitySnapshot, error)
	Adjust(ctx context.Context, key string, segment consts.Segment, amount float64) error
	ReplaceSnapshot(ctx context.Context, key string, snapshot models.CapacitySnapshot, ttl time.Duration) error
	DeleteSnapshot(ctx context.Context, key string) error
}

// CapacityLedgerInterface is what the allocation and lifecycle services see.
// A positive amount consumes capacity, a negative amount releases it.
type CapacityLedgerInterface interface {
	GetAvailable(ctx context.Context, nbfcID string) (models.CapacitySnapshot, error)
	GetBooked(ctx context.Context, nbfcID string) (models.CapacitySnapshot, error)
	AdjustBooking(ctx context.Context, nbfcID string, segment consts.Segment, amount float64) error
	ReplaceAvailable(ctx context.Context, nbfcID string, snapshot models.CapacitySnapshot) error
	ReplaceBooked(ctx context.Context, nbfcID string, snapshot models.CapacitySnapshot) error
}
