package capacity

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
)

func projectionFixture() (*ProjectionService, *MockPredictionClient, *MockNbfcRepo, *MockProjectionsRepo) {
	prediction := new(MockPredictionClient)
	nbfcRepo := new(MockNbfcRepo)
	projections := new(MockProjectionsRepo)
	svc := NewProjectionService(prediction, nbfcRepo, projections)
	return svc, prediction, nbfcRepo, projections
}

func pollFor(nbfcName string, dueDayKey string, efficiencies models.CollectionEfficiencies) *models.CollectionPollResponse {
	return &models.CollectionPollResponse{
		Data: map[string]map[string]models.CollectionEfficiencies{
			nbfcName: {dueDayKey: efficiencies},
		},
	}
}

func TestIngestProjectionsComputesWeightedEfficiency(t *testing.T) {
	svc, prediction, nbfcRepo, projections := projectionFixture()

	dueDate := time.Now().AddDate(0, 1, -1)
	dueDayKey := strconv.Itoa(dueDate.Day())
	dueDay := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)

	// Every dpd slot carries efficiency, on-time slot is richer.
	efficiencies := models.CollectionEfficiencies{
		New: map[string]float64{"0": 0.4, "5": 0.1},
		Old: map[string]float64{"0": 0.3},
	}
	nbfc := &storemodels.Nbfc{ID: primitive.ObjectID{0x0c}, Name: "Alpha", IsEnabled: true}

	prediction.On("GetCollectionPoll", mock.Anything).Return(pollFor("Alpha", dueDayKey, efficiencies), nil)
	prediction.On("GetDueAmounts", mock.Anything, dueDate.Format(consts.LoanDayFormat)).
		Return(&models.DueAmountResponse{Data: map[string]float64{"Alpha": 10000}}, nil)
	nbfcRepo.On("GetNbfcByName", mock.Anything, "Alpha").Return(nbfc, nil)
	projections.On("UpsertProjection", mock.Anything, mock.Anything).Return(nil)

	err := svc.IngestProjections(context.Background())

	assert.NoError(t, err)
	// One projection per dpd in -7..45.
	projections.AssertNumberOfCalls(t, "UpsertProjection", 53)
	projections.AssertCalled(t, "UpsertProjection", mock.Anything, mock.MatchedBy(func(d storemodels.ProjectionCollectionData) bool {
		// dpd 0: wace = 0.4 + 0.3, amount = 0.7 * 10000
		return d.CollectionDate.Equal(dueDay) && math.Abs(d.Amount-7000) < 1e-6
	}))
	projections.AssertCalled(t, "UpsertProjection", mock.Anything, mock.MatchedBy(func(d storemodels.ProjectionCollectionData) bool {
		return d.CollectionDate.Equal(dueDay.AddDate(0, 0, 5)) && math.Abs(d.Amount-1000) < 1e-6
	}))
}

func TestIngestProjectionsSkipsUnknownNbfc(t *testing.T) {
	svc, prediction, nbfcRepo, projections := projectionFixture()

	dueDate := time.Now().AddDate(0, 1, -1)
	dueDayKey := strconv.Itoa(dueDate.Day())

	prediction.On("GetCollectionPoll", mock.Anything).
		Return(pollFor("Ghost", dueDayKey, models.CollectionEfficiencies{}), nil)
	prediction.On("GetDueAmounts", mock.Anything, mock.Anything).
		Return(&models.DueAmountResponse{Data: map[string]float64{}}, nil)
	nbfcRepo.On("GetNbfcByName", mock.Anything, "Ghost").Return(nil, nil)

	err := svc.IngestProjections(context.Background())

	assert.NoError(t, err)
	projections.AssertNotCalled(t, "UpsertProjection", mock.Anything, mock.Anything)
}

func TestIngestProjectionsEmptyPoll(t *testing.T) {
	svc, prediction, _, _ := projectionFixture()

	prediction.On("GetCollectionPoll", mock.Anything).Return(&models.CollectionPollResponse{}, nil)

	err := svc.IngestProjections(context.Background())

	assert.Equal(t, consts.ErrMalformedPredictionData, err)
}

func TestIngestProjectionsUpstreamFailure(t *testing.T) {
	svc, prediction, _, _ := projectionFixture()

	prediction.On("GetCollectionPoll", mock.Anything).Return(nil, consts.ErrPredictionUpstream)

	err := svc.IngestProjections(context.Background())

	assert.Equal(t, consts.ErrPredictionUpstream, err)
}
