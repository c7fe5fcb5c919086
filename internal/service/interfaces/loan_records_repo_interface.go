package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cashflow-router/internal/pkg/store/models"
)

type LoanRecordsRepositoryInterface interface {
	// GetActiveRecord fetches the single non-failed record for the user on the
	// given loan day, or nil when none exists.
	GetActiveRecord(ctx context.Context, userID int64, loanDay string) (*models.LoanRecord, error)
	CreateRecord(ctx context.Context, record models.LoanRecord) (primitive.ObjectID, error)
	UpdateRecord(ctx context.Context, id primitive.ObjectID, update interface{}) error
	// BookedTotals aggregates reserved amounts of non-failed records per
	// segment for one NBFC and day. This is the durable side of the ledger.
	BookedTotals(ctx context.Context, nbfcID primitive.ObjectID, loanDay string) (models.CapacitySnapshot, error)
	FindStaleInitiated(ctx context.Context, before time.Time) ([]models.LoanRecord, error)
	EnsureIndexes(ctx context.Context) error
}

type LoanRecordsStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.LoanRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.LoanRecord, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	AggregateAll(ctx context.Context, pipeline interface{}, result interface{}) error
}
