package ledger

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/service/interfaces"
)

// CapacityLedgerService maps NBFC ids onto the two ledger hashes and retries
// transient Redis failures a bounded number of times. Exhausted retries
// surface as ErrLedgerAdjustFailed; the drift left behind heals on the next
// recompute cycle.
type CapacityLedgerService struct {
	adapter     interfaces.RedisLedgerInterface
	snapshotTTL time.Duration
	retries     int
}

func NewCapacityLedgerService(adapter interfaces.RedisLedgerInterface, snapshotTTL time.Duration, retries int) *CapacityLedgerService {
	if retries < 1 {
		retries = 1
	}
	return &CapacityLedgerService{
		adapter:     adapter,
		snapshotTTL: snapshotTTL,
		retries:     retries,
	}
}

func (s *CapacityLedgerService) GetAvailable(ctx context.Context, nbfcID string) (models.CapacitySnapshot, error) {
	return s.adapter.GetSnapshot(ctx, models.AvailableKeyBuilder(nbfcID))
}

func (s *CapacityLedgerService) GetBooked(ctx context.Context, nbfcID string) (models.CapacitySnapshot, error) {
	return s.adapter.GetSnapshot(ctx, models.BookedKeyBuilder(nbfcID))
}

// AdjustBooking consumes amount from available and adds it to booked-today.
// Negative amounts release. The two keys are adjusted independently; a crash
// between them leaves drift that the recompute job overwrites.
func (s *CapacityLedgerService) AdjustBooking(ctx context.Context, nbfcID string, segment consts.Segment, amount float64) error {
	if err := s.withRetries(ctx, func() error {
		return s.adapter.Adjust(ctx, models.AvailableKeyBuilder(nbfcID), segment, -amount)
	}); err != nil {
		logger.CtxError(ctx, "Available ledger adjustment failed", err,
			zap.String("nbfcId", nbfcID), zap.Float64("amount", amount))
		return consts.ErrLedgerAdjustFailed
	}

	if err := s.withRetries(ctx, func() error {
		return s.adapter.Adjust(ctx, models.BookedKeyBuilder(nbfcID), segment, amount)
	}); err != nil {
		logger.CtxError(ctx, "Booked ledger adjustment failed", err,
			zap.String("nbfcId", nbfcID), zap.Float64("amount", amount))
		return consts.ErrLedgerAdjustFailed
	}

	return nil
}

func (s *CapacityLedgerService) ReplaceAvailable(ctx context.Context, nbfcID string, snapshot models.CapacitySnapshot) error {
	return s.adapter.ReplaceSnapshot(ctx, models.AvailableKeyBuilder(nbfcID), snapshot, s.snapshotTTL)
}

func (s *CapacityLedgerService) ReplaceBooked(ctx context.Context, nbfcID string, snapshot models.CapacitySnapshot) error {
	return s.adapter.ReplaceSnapshot(ctx, models.BookedKeyBuilder(nbfcID), snapshot, s.snapshotTTL)
}

func (s *CapacityLedgerService) withRetries(ctx context.Context, op func() error) error {
	var err error
	for attempt := 0; attempt < s.retries; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
