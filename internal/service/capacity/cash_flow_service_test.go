package capacity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
)

func cashFlowFixture() (*CashFlowService, *MockCashFlowInputsRepo, *MockNbfcRepo) {
	cashFlowInputs := new(MockCashFlowInputsRepo)
	nbfcRepo := new(MockNbfcRepo)
	svc := NewCashFlowService(cashFlowInputs, nbfcRepo)
	return svc, cashFlowInputs, nbfcRepo
}

var cashFlowNbfcID = primitive.ObjectID{0x0d}

func TestGetDailyCashFlow(t *testing.T) {
	svc, cashFlowInputs, nbfcRepo := cashFlowFixture()

	nbfcRepo.On("GetNbfcByID", mock.Anything, cashFlowNbfcID).
		Return(&storemodels.Nbfc{ID: cashFlowNbfcID, Name: "A", IsEnabled: true}, nil)
	cashFlowInputs.On("GetDailyCashFlow", mock.Anything, cashFlowNbfcID, "2026-08-29").
		Return(&storemodels.DailyCashFlow{
			NbfcID:              cashFlowNbfcID,
			Date:                "2026-08-29",
			PredictedCashInflow: 8000,
			Collection:          7600,
			AvailableCashFlow:   6500,
			LoanBooked:          1500,
			Variance:            -5,
		}, nil)

	view, err := svc.GetDailyCashFlow(context.Background(), cashFlowNbfcID.Hex(), "2026-08-29")

	assert.NoError(t, err)
	assert.Equal(t, 8000.0, view.PredictedCashInflow)
	assert.Equal(t, 1500.0, view.LoanBooked)
	assert.Equal(t, -5.0, view.Variance)
}

func TestGetDailyCashFlowUnknownNbfc(t *testing.T) {
	svc, _, nbfcRepo := cashFlowFixture()

	nbfcRepo.On("GetNbfcByID", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.GetDailyCashFlow(context.Background(), cashFlowNbfcID.Hex(), "2026-08-29")
	assert.Equal(t, consts.ErrNbfcNotFound, err)

	_, err = svc.GetDailyCashFlow(context.Background(), "not-a-hex-id", "2026-08-29")
	assert.Equal(t, consts.ErrNbfcNotFound, err)
}

func TestGetDailyCashFlowNoData(t *testing.T) {
	svc, cashFlowInputs, nbfcRepo := cashFlowFixture()

	nbfcRepo.On("GetNbfcByID", mock.Anything, cashFlowNbfcID).
		Return(&storemodels.Nbfc{ID: cashFlowNbfcID, IsEnabled: true}, nil)
	cashFlowInputs.On("GetDailyCashFlow", mock.Anything, cashFlowNbfcID, "2026-08-29").Return(nil, nil)

	_, err := svc.GetDailyCashFlow(context.Background(), cashFlowNbfcID.Hex(), "2026-08-29")

	assert.Equal(t, consts.ErrCashFlowDataNotFound, err)
}

func TestRegisterHoldCashInclusiveWindow(t *testing.T) {
	svc, cashFlowInputs, nbfcRepo := cashFlowFixture()

	nbfcRepo.On("GetNbfcByID", mock.Anything, cashFlowNbfcID).
		Return(&storemodels.Nbfc{ID: cashFlowNbfcID, IsEnabled: true}, nil)
	cashFlowInputs.On("CreateHoldCash", mock.Anything, mock.MatchedBy(func(doc storemodels.HoldCash) bool {
		wantStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		// Window is inclusive of its last date.
		return doc.StartDate.Equal(wantStart) && doc.EndDate.After(time.Date(2026, 9, 5, 23, 59, 59, 0, time.UTC)) && doc.HoldCash == 40
	})).Return(nil)

	err := svc.RegisterHoldCash(context.Background(), models.HoldCashRequest{
		NbfcID:    cashFlowNbfcID.Hex(),
		StartDate: "2026-09-01",
		EndDate:   "2026-09-05",
		HoldCash:  40,
	})

	assert.NoError(t, err)
	cashFlowInputs.AssertExpectations(t)
}

func TestRegisterCapitalInflowBadDate(t *testing.T) {
	svc, _, nbfcRepo := cashFlowFixture()

	nbfcRepo.On("GetNbfcByID", mock.Anything, cashFlowNbfcID).
		Return(&storemodels.Nbfc{ID: cashFlowNbfcID, IsEnabled: true}, nil)

	err := svc.RegisterCapitalInflow(context.Background(), models.CapitalInflowRequest{
		NbfcID:        cashFlowNbfcID.Hex(),
		StartDate:     "01-09-2026",
		EndDate:       "2026-09-05",
		CapitalInflow: 50000,
	})

	assert.Error(t, err)
}

func TestRegisterUserRatio(t *testing.T) {
	svc, cashFlowInputs, nbfcRepo := cashFlowFixture()

	nbfcRepo.On("GetNbfcByID", mock.Anything, cashFlowNbfcID).
		Return(&storemodels.Nbfc{ID: cashFlowNbfcID, IsEnabled: true}, nil)
	cashFlowInputs.On("CreateUserRatio", mock.Anything, mock.MatchedBy(func(doc storemodels.UserRatio) bool {
		return doc.OldPercentage == 70 && doc.NewPercentage == 30
	})).Return(nil)

	err := svc.RegisterUserRatio(context.Background(), models.UserRatioRequest{
		NbfcID:        cashFlowNbfcID.Hex(),
		StartDate:     "2026-09-01",
		EndDate:       "2026-09-01",
		OldPercentage: 70,
		NewPercentage: 30,
	})

	assert.NoError(t, err)
	cashFlowInputs.AssertExpectations(t)
}
