package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/store/models"
)

type MockRedisLedger struct {
	mock.Mock
}

func (m *MockRedisLedger) GetSnapshot(ctx context.Context, key string) (models.CapacitySnapshot, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(models.CapacitySnapshot), args.Error(1)
}

func (m *MockRedisLedger) Adjust(ctx context.Context, key string, segment consts.Segment, amount float64) error {
	args := m.Called(ctx, key, segment, amount)
	return args.Error(0)
}

func (m *MockRedisLedger) ReplaceSnapshot(ctx context.Context, key string, snapshot models.CapacitySnapshot, ttl time.Duration) error {
	args := m.Called(ctx, key, snapshot, ttl)
	return args.Error(0)
}

func (m *MockRedisLedger) DeleteSnapshot(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func TestAdjustBookingMovesBothKeys(t *testing.T) {
	adapter := new(MockRedisLedger)
	svc := NewCapacityLedgerService(adapter, 30*time.Minute, 3)

	adapter.On("Adjust", mock.Anything, models.AvailableKeyBuilder("nbfc1"), consts.SegmentNew, -1000.0).Return(nil)
	adapter.On("Adjust", mock.Anything, models.BookedKeyBuilder("nbfc1"), consts.SegmentNew, 1000.0).Return(nil)

	err := svc.AdjustBooking(context.Background(), "nbfc1", consts.SegmentNew, 1000)

	assert.NoError(t, err)
	adapter.AssertExpectations(t)
}

func TestAdjustBookingRetriesTransientFailure(t *testing.T) {
	adapter := new(MockRedisLedger)
	svc := NewCapacityLedgerService(adapter, 0, 3)

	adapter.On("Adjust", mock.Anything, models.AvailableKeyBuilder("nbfc1"), consts.SegmentOld, -500.0).
		Return(assert.AnError).Once()
	adapter.On("Adjust", mock.Anything, models.AvailableKeyBuilder("nbfc1"), consts.SegmentOld, -500.0).
		Return(nil).Once()
	adapter.On("Adjust", mock.Anything, models.BookedKeyBuilder("nbfc1"), consts.SegmentOld, 500.0).Return(nil)

	err := svc.AdjustBooking(context.Background(), "nbfc1", consts.SegmentOld, 500)

	assert.NoError(t, err)
	adapter.AssertExpectations(t)
}

func TestAdjustBookingExhaustedRetries(t *testing.T) {
	adapter := new(MockRedisLedger)
	svc := NewCapacityLedgerService(adapter, 0, 2)

	adapter.On("Adjust", mock.Anything, models.AvailableKeyBuilder("nbfc1"), consts.SegmentNew, -500.0).
		Return(assert.AnError)

	err := svc.AdjustBooking(context.Background(), "nbfc1", consts.SegmentNew, 500)

	assert.Equal(t, consts.ErrLedgerAdjustFailed, err)
	adapter.AssertNumberOfCalls(t, "Adjust", 2)
}

func TestReplaceAvailableCarriesTTL(t *testing.T) {
	adapter := new(MockRedisLedger)
	svc := NewCapacityLedgerService(adapter, 30*time.Minute, 1)

	snapshot := models.CapacitySnapshot{Old: 1, New: 2, Total: 3}
	adapter.On("ReplaceSnapshot", mock.Anything, models.AvailableKeyBuilder("nbfc1"), snapshot, 30*time.Minute).Return(nil)

	err := svc.ReplaceAvailable(context.Background(), "nbfc1", snapshot)

	assert.NoError(t, err)
	adapter.AssertExpectations(t)
}

func TestGetAvailableAndBookedUseDistinctKeys(t *testing.T) {
	adapter := new(MockRedisLedger)
	svc := NewCapacityLedgerService(adapter, 0, 1)

	adapter.On("GetSnapshot", mock.Anything, models.AvailableKeyBuilder("nbfc1")).
		Return(models.CapacitySnapshot{Total: 6500}, nil)
	adapter.On("GetSnapshot", mock.Anything, models.BookedKeyBuilder("nbfc1")).
		Return(models.CapacitySnapshot{Total: 1500}, nil)

	available, err := svc.GetAvailable(context.Background(), "nbfc1")
	assert.NoError(t, err)
	assert.Equal(t, 6500.0, available.Total)

	booked, err := svc.GetBooked(context.Background(), "nbfc1")
	assert.NoError(t, err)
	assert.Equal(t, 1500.0, booked.Total)
}
