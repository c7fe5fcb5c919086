package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cashflow-router/internal/pkg/store/models"
)

type ProjectionsRepositoryInterface interface {
	// UpsertProjection writes one projected collection amount, replacing any
	// previous projection for the same NBFC, due date and collection date.
	UpsertProjection(ctx context.Context, doc models.ProjectionCollectionData) error
	// SumCollectionsOn totals every projected amount landing on the given
	// collection date for one NBFC. This is the predicted cash inflow.
	SumCollectionsOn(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (float64, error)
}

type ProjectionsStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.ProjectionCollectionData, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	AggregateAll(ctx context.Context, pipeline interface{}, result interface{}) error
}
