package cashflowinputs

import (
	"context"
	"errors"
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

// CashFlowInputsRepository serves the operator-supplied inputs and the daily
// roll-up. Windows may overlap; the row with the latest end date wins.
type CashFlowInputsRepository struct {
	capitalInflow interfaces.CapitalInflowStoreInterface
	holdCash      interfaces.HoldCashStoreInterface
	userRatio     interfaces.UserRatioStoreInterface
	dailyCashFlow interfaces.DailyCashFlowStoreInterface
}

func NewCashFlowInputsRepository(client *mongodb.MongoClient) *CashFlowInputsRepository {
	return &CashFlowInputsRepository{
		capitalInflow: repository.NewMongoRepository[models.CapitalInflow](client.Database.Collection(consts.CapitalInflowCollection)),
		holdCash:      repository.NewMongoRepository[models.HoldCash](client.Database.Collection(consts.HoldCashCollection)),
		userRatio:     repository.NewMongoRepository[models.UserRatio](client.Database.Collection(consts.UserRatioCollection)),
		dailyCashFlow: repository.NewMongoRepository[models.DailyCashFlow](client.Database.Collection(consts.DailyCashFlowCollection)),
	}
}

func NewCashFlowInputsRepositoryWithInterfaces(
	capitalInflow interfaces.CapitalInflowStoreInterface,
	holdCash interfaces.HoldCashStoreInterface,
	userRatio interfaces.UserRatioStoreInterface,
	dailyCashFlow interfaces.DailyCashFlowStoreInterface,
) *CashFlowInputsRepository {
	return &CashFlowInputsRepository{
		capitalInflow: capitalInflow,
		holdCash:      holdCash,
		userRatio:     userRatio,
		dailyCashFlow: dailyCashFlow,
	}
}

func (cr CashFlowInputsRepository) CreateCapitalInflow(ctx context.Context, doc models.CapitalInflow) error {
	doc.CreatedAt = time.Now()
	if _, err := cr.capitalInflow.Create(ctx, doc); err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingCashFlowInput, err, zap.String("nbfcId", doc.NbfcID.Hex()))
		return err
	}
	return nil
}

func (cr CashFlowInputsRepository) CreateHoldCash(ctx context.Context, doc models.HoldCash) error {
	doc.CreatedAt = time.Now()
	if _, err := cr.holdCash.Create(ctx, doc); err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingCashFlowInput, err, zap.String("nbfcId", doc.NbfcID.Hex()))
		return err
	}
	return nil
}

func (cr CashFlowInputsRepository) CreateUserRatio(ctx context.Context, doc models.UserRatio) error {
	doc.CreatedAt = time.Now()
	if _, err := cr.userRatio.Create(ctx, doc); err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingCashFlowInput, err, zap.String("nbfcId", doc.NbfcID.Hex()))
		return err
	}
	return nil
}

// ResolveCapitalInflow returns 0 when no window covers the date.
func (cr CashFlowInputsRepository) ResolveCapitalInflow(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (float64, error) {
	doc, err := cr.capitalInflow.FindOne(ctx, windowFilter(nbfcID, date), latestEndDateFirst())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		logger.CtxError(ctx, log_messages.ErrorResolvingCashFlowInput, err, zap.String("nbfcId", nbfcID.Hex()))
		return 0, err
	}
	return doc.CapitalInflow, nil
}

// ResolveHoldCash returns 0 when no window covers the date.
func (cr CashFlowInputsRepository) ResolveHoldCash(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (float64, error) {
	doc, err := cr.holdCash.FindOne(ctx, windowFilter(nbfcID, date), latestEndDateFirst())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		logger.CtxError(ctx, log_messages.ErrorResolvingCashFlowInput, err, zap.String("nbfcId", nbfcID.Hex()))
		return 0, err
	}
	return doc.HoldCash, nil
}

// ResolveUserRatio returns nil when no window covers the date; the caller
// falls back to the configured default split.
func (cr CashFlowInputsRepository) ResolveUserRatio(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (*models.UserRatio, error) {
	doc, err := cr.userRatio.FindOne(ctx, windowFilter(nbfcID, date), latestEndDateFirst())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorResolvingCashFlowInput, err, zap.String("nbfcId", nbfcID.Hex()))
		return nil, err
	}
	return &doc, nil
}

func (cr CashFlowInputsRepository) UpsertDailyCashFlow(ctx context.Context, doc models.DailyCashFlow) error {
	filter := bson.M{"nbfcId": doc.NbfcID, "date": doc.Date}
	update := bson.M{
		"$set": bson.M{
			"predictedCashInflow": doc.PredictedCashInflow,
			"collection":          doc.Collection,
			"carryForward":        doc.CarryForward,
			"availableCashFlow":   doc.AvailableCashFlow,
			"loanBooked":          doc.LoanBooked,
			"variance":            doc.Variance,
			"updatedAt":           time.Now(),
		},
		"$setOnInsert": bson.M{
			"nbfcId": doc.NbfcID,
			"date":   doc.Date,
		},
	}

	if _, err := cr.dailyCashFlow.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpsertingDailyCashFlow, err,
			zap.String("nbfcId", doc.NbfcID.Hex()), zap.String("date", doc.Date))
		return err
	}
	return nil
}

func (cr CashFlowInputsRepository) GetDailyCashFlow(ctx context.Context, nbfcID primitive.ObjectID, date string) (*models.DailyCashFlow, error) {
	doc, err := cr.dailyCashFlow.FindOne(ctx, bson.M{"nbfcId": nbfcID, "date": date}, nil)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingDailyCashFlow, err,
			zap.String("nbfcId", nbfcID.Hex()), zap.String("date", date))
		return nil, err
	}
	return &doc, nil
}

func windowFilter(nbfcID primitive.ObjectID, date time.Time) bson.M {
	return bson.M{
		"nbfcId":    nbfcID,
		"startDate": bson.M{"$lte": date},
		"endDate":   bson.M{"$gte": date},
	}
}

func latestEndDateFirst() *options.FindOneOptions {
	return options.FindOne().SetSort(bson.D{{Key: "endDate", Value: -1}})
}
