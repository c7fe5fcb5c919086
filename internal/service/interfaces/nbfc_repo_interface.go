package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cashflow-router/internal/pkg/store/models"
)

type NbfcRepositoryInterface interface {
	CreateNbfc(ctx context.Context, nbfc models.Nbfc) (primitive.ObjectID, error)
	GetNbfcByID(ctx context.Context, id primitive.ObjectID) (*models.Nbfc, error)
	ListEnabledNbfcs(ctx context.Context) ([]models.Nbfc, error)
	GetNbfcByName(ctx context.Context, name string) (*models.Nbfc, error)
	UpdateNbfc(ctx context.Context, id primitive.ObjectID, update interface{}) error
}

type NbfcStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.Nbfc, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Nbfc, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}
