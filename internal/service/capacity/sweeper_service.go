package capacity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/service/interfaces"
)

// SweeperService is the cancellation path for abandoned bookings: initiated
// records untouched past the timeout are force-failed and their reservations
// released.
type SweeperService struct {
	loanRecords interfaces.LoanRecordsRepositoryInterface
	lifecycle   interfaces.LifecycleServiceInterface
	expiryAge   time.Duration
}

func NewSweeperService(
	loanRecords interfaces.LoanRecordsRepositoryInterface,
	lifecycle interfaces.LifecycleServiceInterface,
	expiryAge time.Duration,
) *SweeperService {
	if expiryAge <= 0 {
		expiryAge = consts.InitiatedExpiryAge
	}
	return &SweeperService{
		loanRecords: loanRecords,
		lifecycle:   lifecycle,
		expiryAge:   expiryAge,
	}
}

func (s *SweeperService) SweepExpired(ctx context.Context) error {
	cutoff := time.Now().Add(-s.expiryAge)
	stale, err := s.loanRecords.FindStaleInitiated(ctx, cutoff)
	if err != nil {
		logger.CtxError(ctx, log_messages.ExpirySweepFailed, err)
		return err
	}

	expired := 0
	for _, record := range stale {
		if err := s.lifecycle.ExpireRecord(ctx, record); err != nil {
			logger.CtxError(ctx, log_messages.ExpirySweepFailed, err,
				zap.String("loanRecordId", record.ID.Hex()), zap.Int64("userId", record.UserID))
			continue
		}
		expired++
	}

	if len(stale) > 0 {
		logger.CtxInfo(ctx, "Expiry sweep finished",
			zap.Int("found", len(stale)), zap.Int("expired", expired))
	}
	return nil
}
