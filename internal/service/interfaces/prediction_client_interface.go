package interfaces

import (
	"context"

	"cashflow-router/internal/pkg/models"
)

// PredictionClientInterface talks to the upstream collection prediction API.
type PredictionClientInterface interface {
	GetCollectionPoll(ctx context.Context) (*models.CollectionPollResponse, error)
	GetDueAmounts(ctx context.Context, dueDate string) (*models.DueAmountResponse, error)
}
