package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cashflow-router/internal/pkg/store/models"
)

// CashFlowInputsRepositoryInterface serves the operator-supplied capacity
// inputs and the daily roll-up. Resolve* methods pick the window covering the
// date with the latest end date.
type CashFlowInputsRepositoryInterface interface {
	CreateCapitalInflow(ctx context.Context, doc models.CapitalInflow) error
	CreateHoldCash(ctx context.Context, doc models.HoldCash) error
	CreateUserRatio(ctx context.Context, doc models.UserRatio) error
	ResolveCapitalInflow(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (float64, error)
	ResolveHoldCash(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (float64, error)
	ResolveUserRatio(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (*models.UserRatio, error)
	UpsertDailyCashFlow(ctx context.Context, doc models.DailyCashFlow) error
	GetDailyCashFlow(ctx context.Context, nbfcID primitive.ObjectID, date string) (*models.DailyCashFlow, error)
}

type CapitalInflowStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.CapitalInflow, error)
}

type HoldCashStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.HoldCash, error)
}

type UserRatioStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.UserRatio, error)
}

type DailyCashFlowStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.DailyCashFlow, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}
