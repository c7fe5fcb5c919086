package bookinglogs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	mongodb "cashflow-router/internal/pkg/db/mongo"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/pkg/store/repository"
	"cashflow-router/internal/service/interfaces"
)

type BookingLogsRepository struct {
	repo interfaces.BookingLogsStoreInterface
}

func NewBookingLogsRepository(client *mongodb.MongoClient) *BookingLogsRepository {
	collection := client.Database.Collection(consts.BookingLogCollection)
	repo := repository.NewMongoRepository[models.BookingLog](collection)
	return &BookingLogsRepository{repo: repo}
}

func NewBookingLogsRepositoryWithInterface(repo interfaces.BookingLogsStoreInterface) *BookingLogsRepository {
	return &BookingLogsRepository{repo: repo}
}

func (br BookingLogsRepository) AppendLog(ctx context.Context, log models.BookingLog) error {
	log.CreatedAt = time.Now()

	result, err := br.repo.Create(ctx, log)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorCreatingBookingLog, err,
			zap.String("GUID", log.GUID), zap.String("loanRecordId", log.LoanRecordID.Hex()))
		return err
	}

	logger.CtxDebug(ctx, "Booking log appended",
		zap.Any("bookingLogId", result.InsertedID),
		zap.String("reason", log.Reason),
		zap.Float64("amount", log.Amount),
	)
	return nil
}
