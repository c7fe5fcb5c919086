package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"cashflow-router/internal/pkg/store/models"
)

type BookingLogsRepositoryInterface interface {
	AppendLog(ctx context.Context, log models.BookingLog) error
}

type BookingLogsStoreInterface interface {
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
}
