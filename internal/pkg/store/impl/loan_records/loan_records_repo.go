package loanrecords

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

type LoanRecordsRepository struct {
	repo       interfaces.LoanRecordsStoreInterface
	collection *mongo.Collection
}

func NewLoanRecordsRepository(client *mongodb.MongoClient) *LoanRecordsRepository {
	collection := client.Database.Collection(consts.LoanRecordCollection)
	repo := repository.NewMongoRepository[models.LoanRecord](collection)
	return &LoanRecordsRepository{repo: repo, collection: collection}
}

func NewLoanRecordsRepositoryWithInterface(repo interfaces.LoanRecordsStoreInterface) *LoanRecordsRepository {
	return &LoanRecordsRepository{repo: repo}
}

// EnsureIndexes creates the partial unique index enforcing one active record
// per (user, day). Failed records drop out of the constraint via isActive.
func (lr LoanRecordsRepository) EnsureIndexes(ctx context.Context) error {
	if lr.collection == nil {
		return nil
	}

	_, err := lr.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "loanDay", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isActive": true}),
		},
		{
			Keys: bson.D{{Key: "nbfcId", Value: 1}, {Key: "loanDay", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "updatedAt", Value: 1}},
		},
	})
	return err
}

func (lr LoanRecordsRepository) GetActiveRecord(ctx context.Context, userID int64, loanDay string) (*models.LoanRecord, error) {
	record, err := lr.repo.FindOne(ctx, bson.M{
		"userId":   userID,
		"loanDay":  loanDay,
		"isActive": true,
	}, nil)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.CtxError(ctx, log_messages.ErrorFetchingLoanRecord, err,
			zap.Int64("userId", userID), zap.String("loanDay", loanDay))
		return nil, err
	}
	return &record, nil
}

func (lr LoanRecordsRepository) CreateRecord(ctx context.Context, record models.LoanRecord) (primitive.ObjectID, error) {
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := lr.repo.Create(ctx, record)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingLoanRecord, err,
			zap.Int64("userId", record.UserID), zap.String("loanDay", record.LoanDay))
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	logger.CtxInfo(ctx, "Loan record created",
		zap.String("loanRecordId", id.Hex()),
		zap.Int64("userId", record.UserID),
		zap.String("nbfcId", record.NbfcID.Hex()),
	)
	return id, nil
}

func (lr LoanRecordsRepository) UpdateRecord(ctx context.Context, id primitive.ObjectID, update interface{}) error {
	_, err := lr.repo.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":         update,
		"$currentDate": bson.M{"updatedAt": true},
	})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorUpdatingLoanRecord, err, zap.String("loanRecordId", id.Hex()))
		return err
	}
	return nil
}

// BookedTotals sums ReservedAmount per segment over non-failed records. The
// recompute job subtracts these from computed availability, so the durable
// records are the source of truth for booked capacity.
func (lr LoanRecordsRepository) BookedTotals(ctx context.Context, nbfcID primitive.ObjectID, loanDay string) (models.CapacitySnapshot, error) {
	var snapshot models.CapacitySnapshot

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"nbfcId":  nbfcID,
			"loanDay": loanDay,
			"status":  bson.M{"$ne": consts.StatusFailed},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$userType",
			"amount": bson.M{"$sum": "$reservedAmount"},
		}}},
	}

	var grouped []struct {
		ID     consts.Segment `bson:"_id"`
		Amount float64        `bson:"amount"`
	}
	if err := lr.repo.AggregateAll(ctx, pipeline, &grouped); err != nil {
		logger.CtxError(ctx, log_messages.ErrorAggregatingBookedTotals, err,
			zap.String("nbfcId", nbfcID.Hex()), zap.String("loanDay", loanDay))
		return snapshot, err
	}

	for _, group := range grouped {
		switch group.ID {
		case consts.SegmentOld:
			snapshot.Old = group.Amount
		case consts.SegmentNew:
			snapshot.New = group.Amount
		}
	}
	snapshot.Total = snapshot.Old + snapshot.New

	return snapshot, nil
}

// FindStaleInitiated returns initiated records that have not progressed since
// before the cutoff. updatedAt restarts on every transition, so a record whose
// reservation was refreshed recently is not stale even when it was created
// hours ago.
func (lr LoanRecordsRepository) FindStaleInitiated(ctx context.Context, before time.Time) ([]models.LoanRecord, error) {
	records, err := lr.repo.Find(ctx, bson.M{
		"status":    consts.StatusInitiated,
		"isActive":  true,
		"updatedAt": bson.M{"$lt": before},
	})
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorFetchingLoanRecord, err, zap.Time("before", before))
		return nil, err
	}
	return records, nil
}
