package loanrecords

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/store/models"
)

type MockLoanRecordsStore struct {
	mock.Mock
}

func (m *MockLoanRecordsStore) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document)
	if result, ok := args.Get(0).(*mongo.InsertOneResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRecordsStore) FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (models.LoanRecord, error) {
	args := m.Called(ctx, filter, opt)
	return args.Get(0).(models.LoanRecord), args.Error(1)
}

func (m *MockLoanRecordsStore) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.LoanRecord, error) {
	args := m.Called(ctx, filter)
	if records, ok := args.Get(0).([]models.LoanRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRecordsStore) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	args := m.Called(ctx, filter, update)
	if result, ok := args.Get(0).(*mongo.UpdateResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLoanRecordsStore) AggregateAll(ctx context.Context, pipeline interface{}, result interface{}) error {
	args := m.Called(ctx, pipeline, result)
	return args.Error(0)
}

func TestFindStaleInitiatedFiltersOnLastUpdate(t *testing.T) {
	store := new(MockLoanRecordsStore)
	repo := NewLoanRecordsRepositoryWithInterface(store)
	cutoff := time.Now().Add(-consts.InitiatedExpiryAge)

	var captured bson.M
	store.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f, ok := filter.(bson.M)
		if ok {
			captured = f
		}
		return ok
	})).Return([]models.LoanRecord{}, nil)

	_, err := repo.FindStaleInitiated(context.Background(), cutoff)
	require.NoError(t, err)

	// A record whose reservation was refreshed recently must not be swept, so
	// staleness is judged on updatedAt, not createdAt.
	assert.Equal(t, consts.StatusInitiated, captured["status"])
	assert.Equal(t, true, captured["isActive"])
	assert.Equal(t, bson.M{"$lt": cutoff}, captured["updatedAt"])
	assert.NotContains(t, captured, "createdAt")
}
