package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

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

func (m *MockNbfcRepo) GetNbfcByName(ctx context.Context, name string) (*storemodels.Nbfc, error) {
	args := m.Called(ctx, name)
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

func (m *MockNbfcRepo) UpdateNbfc(ctx context.Context, id primitive.ObjectID, update interface{}) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

type MockEligibilityRulesRepo struct {
	mock.Mock
}

func (m *MockEligibilityRulesRepo) UpsertRule(ctx context.Context, rule storemodels.EligibilityRule) (bool, error) {
	args := m.Called(ctx, rule)
	return args.Bool(0), args.Error(1)
}

func (m *MockEligibilityRulesRepo) GetRule(ctx context.Context, nbfcID primitive.ObjectID, loanType string) (*storemodels.EligibilityRule, error) {
	args := m.Called(ctx, nbfcID, loanType)
	if rule, ok := args.Get(0).(*storemodels.EligibilityRule); ok {
		return rule, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockEligibilityRulesRepo) GetRulesByLoanType(ctx context.Context, loanType string) ([]storemodels.EligibilityRule, error) {
	args := m.Called(ctx, loanType)
	if rules, ok := args.Get(0).([]storemodels.EligibilityRule); ok {
		return rules, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpsertRule(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assert.NoError(t, RegisterCustomValidators())

	knownID := primitive.ObjectID{0x0a}
	body := `{"nbfcId":"` + knownID.Hex() + `","loanType":"P","maxLoanTenure":30,"maxAmount":5000,"minCibilScore":700,"shouldCheck":true,"shouldAssign":true}`

	t.Run("Creates rule for known partner", func(t *testing.T) {
		rulesRepo := new(MockEligibilityRulesRepo)
		nbfcRepo := new(MockNbfcRepo)
		nbfcRepo.On("GetNbfcByID", mock.Anything, knownID).
			Return(&storemodels.Nbfc{ID: knownID, Name: "Alpha", IsEnabled: true}, nil)
		rulesRepo.On("UpsertRule", mock.Anything, mock.Anything).Return(true, nil)
		handler := NewEligibilityRuleHandler(rulesRepo, nbfcRepo)

		w := postJSON(handler.UpsertRule, "/CashFlowRouter/EligibilityRule", body)

		assert.Equal(t, http.StatusCreated, w.Code)
		rulesRepo.AssertExpectations(t)
	})

	t.Run("Unknown partner id rejected", func(t *testing.T) {
		rulesRepo := new(MockEligibilityRulesRepo)
		nbfcRepo := new(MockNbfcRepo)
		nbfcRepo.On("GetNbfcByID", mock.Anything, knownID).Return(nil, nil)
		handler := NewEligibilityRuleHandler(rulesRepo, nbfcRepo)

		w := postJSON(handler.UpsertRule, "/CashFlowRouter/EligibilityRule", body)

		assert.Equal(t, http.StatusNotFound, w.Code)
		rulesRepo.AssertNotCalled(t, "UpsertRule", mock.Anything, mock.Anything)
	})

	t.Run("Malformed partner id rejected", func(t *testing.T) {
		rulesRepo := new(MockEligibilityRulesRepo)
		nbfcRepo := new(MockNbfcRepo)
		handler := NewEligibilityRuleHandler(rulesRepo, nbfcRepo)

		w := postJSON(handler.UpsertRule, "/CashFlowRouter/EligibilityRule",
			`{"nbfcId":"not-a-hex-id","loanType":"P"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
		rulesRepo.AssertNotCalled(t, "UpsertRule", mock.Anything, mock.Anything)
	})
}
