package lifecycle

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/models"
	"cashflow-router/internal/service/interfaces"
)

// FailureNoticeService turns lender failure notices from Pub/Sub into LF
// transitions. Malformed payloads are dropped (acked) so they do not redeliver
// forever; a missing record is likewise terminal for the notice.
type FailureNoticeService struct {
	lifecycle interfaces.LifecycleServiceInterface
}

func NewFailureNoticeService(lifecycle interfaces.LifecycleServiceInterface) *FailureNoticeService {
	return &FailureNoticeService{lifecycle: lifecycle}
}

func (s *FailureNoticeService) HandleNotice(ctx context.Context, payload []byte) error {
	var notice models.LoanFailureNotice
	if err := json.Unmarshal(payload, &notice); err != nil {
		logger.CtxError(ctx, log_messages.FailedFailureNoticeDecode, err)
		return nil
	}
	if notice.UserID == 0 {
		logger.CtxWarn(ctx, log_messages.FailedFailureNoticeDecode, zap.String("reason", "missing userId"))
		return nil
	}

	_, err := s.lifecycle.HandleTransition(ctx, models.TransitionRequest{
		RequestType:   string(consts.RequestLoanFailed),
		UserID:        notice.UserID,
		NbfcID:        notice.NbfcID,
		FailureReason: notice.FailureReason,
	})
	if err != nil {
		if err == consts.ErrLoanRecordNotFound || err == consts.ErrLoanRecordTerminal {
			logger.CtxWarn(ctx, "Failure notice has no live record, dropping",
				zap.Int64("userId", notice.UserID))
			return nil
		}
		return err
	}

	logger.CtxInfo(ctx, "Loan failure notice applied", zap.Int64("userId", notice.UserID))
	return nil
}
