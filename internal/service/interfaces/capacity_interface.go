package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/models"
)

// RecomputeServiceInterface rebuilds the capacity ledger from durable inputs.
type RecomputeServiceInterface interface {
	RecomputeAll(ctx context.Context) error
	RecomputeNbfc(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) error
}

// SweeperServiceInterface expires stale initiated loan records.
type SweeperServiceInterface interface {
	SweepExpired(ctx context.Context) error
}

// ProjectionServiceInterface ingests upstream collection predictions into
// per-date projected amounts.
type ProjectionServiceInterface interface {
	IngestProjections(ctx context.Context) error
}

// CashFlowServiceInterface serves the daily roll-up view and registers the
// operator-supplied capacity inputs.
type CashFlowServiceInterface interface {
	GetDailyCashFlow(ctx context.Context, nbfcID string, date string) (*models.CashFlowResponse, error)
	RegisterCapitalInflow(ctx context.Context, req models.CapitalInflowRequest) error
	RegisterHoldCash(ctx context.Context, req models.HoldCashRequest) error
	RegisterUserRatio(ctx context.Context, req models.UserRatioRequest) error
}
