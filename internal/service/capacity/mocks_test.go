package capacity

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
)

type MockNbfcRepo struct {
	mock.Mock
}

func (m *MockNbfcRepo) CreateNbfc(ctx context.Context, nbfc storemodels.Nbfc) (primitive.ObjectID, error) {
	args := m.Called(ctx, nbfc)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockNbfcRepo) GetNbfcByID(ctx context.Context, id primitive.ObjectID) (*storemodels.Nbfc, error) {
	args := m.Called(ctx, id)
	if nbfc, ok := args.Get(0).(*storemodels.Nbfc); ok {
		return nbfc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNbfcRepo) ListEnabledNbfcs(ctx context.Context) ([]storemodels.Nbfc, error) {
	args := m.Called(ctx)
	if nbfcs, ok := args.Get(0).([]storemodels.Nbfc); ok {
		return nbfcs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNbfcRepo) GetNbfcByName(ctx context.Context, name string) (*storemodels.Nbfc, error) {
	args := m.Called(ctx, name)
	if nbfc, ok := args.Get(0).(*storemodels.Nbfc); ok {
		return nbfc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNbfcRepo) UpdateNbfc(ctx context.Context, id primitive.ObjectID, update interface{}) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

type MockCashFlowInputsRepo struct {
	mock.Mock
}

func (m *MockCashFlowInputsRepo) CreateCapitalInflow(ctx context.Context, doc storemodels.CapitalInflow) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockCashFlowInputsRepo) CreateHoldCash(ctx context.Context, doc storemodels.HoldCash) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockCashFlowInputsRepo) CreateUserRatio(ctx context.Context, doc storemodels.UserRatio) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockCashFlowInputsRepo) ResolveCapitalInflow(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (float64, error) {
	args := m.Called(ctx, nbfcID, date)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCashFlowInputsRepo) ResolveHoldCash(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (float64, error) {
	args := m.Called(ctx, nbfcID, date)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCashFlowInputsRepo) ResolveUserRatio(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (*storemodels.UserRatio, error) {
	args := m.Called(ctx, nbfcID, date)
	if ratio, ok := args.Get(0).(*storemodels.UserRatio); ok {
		return ratio, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCashFlowInputsRepo) UpsertDailyCashFlow(ctx context.Context, doc storemodels.DailyCashFlow) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockCashFlowInputsRepo) GetDailyCashFlow(ctx context.Context, nbfcID primitive.ObjectID, date string) (*storemodels.DailyCashFlow, error) {
	args := m.Called(ctx, nbfcID, date)
	if doc, ok := args.Get(0).(*storemodels.DailyCashFlow); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockProjectionsRepo struct {
	mock.Mock
}

func (m *MockProjectionsRepo) UpsertProjection(ctx context.Context, doc storemodels.ProjectionCollectionData) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockProjectionsRepo) SumCollectionsOn(ctx context.Context, nbfcID primitive.ObjectID, date time.Time) (float64, error) {
	args := m.Called(ctx, nbfcID, date)
	return args.Get(0).(float64), args.Error(1)
}

type MockLoanRecordsRepo struct {
	mock.Mock
}

func (m *MockLoanRecordsRepo) GetActiveRecord(ctx context.Context, userID int64, loanDay string) (*storemodels.LoanRecord, error) {
	args := m.Called(ctx, userID, loanDay)
	if record, ok := args.Get(0).(*storemodels.LoanRecord); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRecordsRepo) CreateRecord(ctx context.Context, record storemodels.LoanRecord) (primitive.ObjectID, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockLoanRecordsRepo) UpdateRecord(ctx context.Context, id primitive.ObjectID, update interface{}) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockLoanRecordsRepo) BookedTotals(ctx context.Context, nbfcID primitive.ObjectID, loanDay string) (storemodels.CapacitySnapshot, error) {
	args := m.Called(ctx, nbfcID, loanDay)
	return args.Get(0).(storemodels.CapacitySnapshot), args.Error(1)
}

func (m *MockLoanRecordsRepo) FindStaleInitiated(ctx context.Context, before time.Time) ([]storemodels.LoanRecord, error) {
	args := m.Called(ctx, before)
	if records, ok := args.Get(0).([]storemodels.LoanRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRecordsRepo) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCapacityLedger struct {
	mock.Mock
}

func (m *MockCapacityLedger) GetAvailable(ctx context.Context, nbfcID string) (storemodels.CapacitySnapshot, error) {
	args := m.Called(ctx, nbfcID)
	return args.Get(0).(storemodels.CapacitySnapshot), args.Error(1)
}

func (m *MockCapacityLedger) GetBooked(ctx context.Context, nbfcID string) (storemodels.CapacitySnapshot, error) {
	args := m.Called(ctx, nbfcID)
	return args.Get(0).(storemodels.CapacitySnapshot), args.Error(1)
}

func (m *MockCapacityLedger) AdjustBooking(ctx context.Context, nbfcID string, segment consts.Segment, amount float64) error {
	args := m.Called(ctx, nbfcID, segment, amount)
	return args.Error(0)
}

func (m *MockCapacityLedger) ReplaceAvailable(ctx context.Context, nbfcID string, snapshot storemodels.CapacitySnapshot) error {
	args := m.Called(ctx, nbfcID, snapshot)
	return args.Error(0)
}

func (m *MockCapacityLedger) ReplaceBooked(ctx context.Context, nbfcID string, snapshot storemodels.CapacitySnapshot) error {
	args := m.Called(ctx, nbfcID, snapshot)
	return args.Error(0)
}

type MockLifecycleService struct {
	mock.Mock
}

func (m *MockLifecycleService) HandleTransition(ctx context.Context, req models.TransitionRequest) (*storemodels.LoanRecord, error) {
	args := m.Called(ctx, req)
	if record, ok := args.Get(0).(*storemodels.LoanRecord); ok {
		return record, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLifecycleService) ExpireRecord(ctx context.Context, record storemodels.LoanRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockPredictionClient struct {
	mock.Mock
}

func (m *MockPredictionClient) GetCollectionPoll(ctx context.Context) (*models.CollectionPollResponse, error) {
	args := m.Called(ctx)
	if resp, ok := args.Get(0).(*models.CollectionPollResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPredictionClient) GetDueAmounts(ctx context.Context, dueDate string) (*models.DueAmountResponse, error) {
	args := m.Called(ctx, dueDate)
	if resp, ok := args.Get(0).(*models.DueAmountResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}
