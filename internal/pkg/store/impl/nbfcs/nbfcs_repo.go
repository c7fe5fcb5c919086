package nbfcs

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	mongodb "cashflow-router/internal/pkg/db/mongo"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/pkg/store/repository"
	"cashflow-router/internal/service/interfaces"
)

type NbfcRepository struct {
	repo interfaces.NbfcStoreInterface
}

func NewNbfcRepository(client *mongodb.MongoClient) *NbfcRepository {
	collection := client.Database.Collection(consts.NbfcCollection)
	repo := repository.NewMongoRepository[models.Nbfc](collection)
	return &NbfcRepository{repo: repo}
}

func NewNbfcRepositoryWithInterface(repo interfaces.NbfcStoreInterface) *NbfcRepository {
	return &NbfcRepository{repo: repo}
}

func (nr NbfcRepository) CreateNbfc(ctx context.Context, nbfc models.Nbfc) (primitive.ObjectID, error) {
	now := time.Now()
	nbfc.CreatedAt = now
	nbfc.UpdatedAt = now

	result, err := nr.repo.Create(ctx, nbfc)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingNbfcDocument, err, zap.String("name", nbfc.Name))
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	logger.CtxInfo(ctx, "NBFC created", zap.String("nbfcId", id.Hex()), zap.String("name", nbfc.Name))
	return id, nil
}

func (nr NbfcRepository) GetNbfcByID(ctx context.Context, id primitive.ObjectID) (*models.Nbfc, error) {
	nbfc, err := nr.repo.FindOne(ctx, bson.M{"_id": id}, nil)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingNbfcDocument, err, zap.String("nbfcId", id.Hex()))
		return nil, err
	}
	return &nbfc, nil
}

func (nr NbfcRepository) GetNbfcByName(ctx context.Context, name string) (*models.Nbfc, error) {
	nbfc, err := nr.repo.FindOne(ctx, bson.M{"name": name}, nil)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingNbfcDocument, err, zap.String("name", name))
		return nil, err
	}
	return &nbfc, nil
}

func (nr NbfcRepository) ListEnabledNbfcs(ctx context.Context) ([]models.Nbfc, error) {
	nbfcs, err := nr.repo.Find(ctx, bson.M{"isEnabled": true})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingNbfcDocument, err)
		return nil, err
	}
	return nbfcs, nil
}

func (nr NbfcRepository) UpdateNbfc(ctx context.Context, id primitive.ObjectID, update interface{}) error {
	_, err := nr.repo.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":         update,
		"$currentDate": bson.M{"updatedAt": true},
	})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpdatingNbfcDocument, err, zap.String("nbfcId", id.Hex()))
		return err
	}
	return nil
}
