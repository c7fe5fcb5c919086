package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
)

// EligibilityServiceInterface narrows the enabled partner set for one request.
// EligibleNbfcs gates on the assign flag (new assignments); HonorAssignedNbfc
// gates on the check flag (requests the partner already holds) and returns nil
// when the assignment may not be kept.
type EligibilityServiceInterface interface {
	EligibleNbfcs(ctx context.Context, req models.AllocationRequest) ([]storemodels.Nbfc, error)
	HonorAssignedNbfc(ctx context.Context, req models.AllocationRequest, nbfcID primitive.ObjectID) (*storemodels.Nbfc, error)
}

// AllocatorServiceInterface picks the NBFC a loan request routes to. Sticky for
// users who already hold an assignment today.
type AllocatorServiceInterface interface {
	AllocateNbfc(ctx context.Context, req models.AllocationRequest) (*models.AllocationResponse, error)
}
