package projections

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	mongodb "cashflow-router/internal/pkg/db/mongo"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/pkg/store/repository"
	"cashflow-router/internal/service/interfaces"
)

type ProjectionsRepository struct {
	repo interfaces.ProjectionsStoreInterface
}

func NewProjectionsRepository(client *mongodb.MongoClient) *ProjectionsRepository {
	collection := client.Database.Collection(consts.ProjectionCollection)
	repo := repository.NewMongoRepository[models.ProjectionCollectionData](collection)
	return &ProjectionsRepository{repo: repo}
}

func NewProjectionsRepositoryWithInterface(repo interfaces.ProjectionsStoreInterface) *ProjectionsRepository {
	return &ProjectionsRepository{repo: repo}
}

func (pr ProjectionsRepository) UpsertProjection(ctx context.Context, doc models.ProjectionCollectionData) error {
	filter := bson.M{
		"nbfcId":         doc.NbfcID,
		"dueDate":        doc.DueDate,
		"collectionDate": doc.CollectionDate,
	}
	update := bson.M{
		"$set": bson.M{"amount": doc.Amount},
		"$setOnInsert": bson.M{
			"nbfcId":         doc.NbfcID,
			"dueDate":        doc.DueDate,
			"collectionDate": doc.CollectionDate,
			"createdAt":      time.Now(),
		},
	}

	if _, err := pr.repo.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpsertingProjection, err,
			zap.String("nbfcId", doc.NbfcID.Hex()), zap.Time("collectionDate", doc.CollectionDate))
		return err
	}
	return nil
}

// SumCollectionsOn totals projections landing on the given calendar day,
// across every due date feeding it.
func (pr ProjectionsRepository) SumCollectionsOn(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (float64, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"nbfcId":         nbfcID,
			"collectionDate": bson.M{"$gte": dayStart, "$lt": dayEnd},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"amount": bson.M{"$sum": "$amount"},
		}}},
	}

	var grouped []struct {
		Amount float64 `bson:"amount"`
	}
	if err := pr.repo.AggregateAll(ctx, pipeline, &grouped); err != nil {
		logger.CtxError(ctx, log_messages.ErrorAggregatingProjectedCollections, err,
			zap.String("nbfcId", nbfcID.Hex()), zap.Time("date", date))
		return 0, err
	}

	if len(grouped) == 0 {
		return 0, nil
	}
	return grouped[0].Amount, nil
}
