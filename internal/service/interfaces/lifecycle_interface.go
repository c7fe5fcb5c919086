package interfaces

import (
	"context"

	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
)

// LifecycleServiceInterface applies LAN, LAD, LF and EXP events to the single
// active loan record of a (user, day).
type LifecycleServiceInterface interface {
	HandleTransition(ctx context.Context, req models.TransitionRequest) (*storemodels.LoanRecord, error)
	// ExpireRecord force-fails a stale initiated record and releases its
	// reservation. Used by the expiry sweeper, which already holds the record.
	ExpireRecord(ctx context.Context, record storemodels.LoanRecord) error
}
