package capacity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/consts"
	storemodels "cashflow-router/internal/pkg/store/models"
)

func staleRecord(firstByte byte, reserved float64) storemodels.LoanRecord {
	return storemodels.LoanRecord{
		ID:             primitive.ObjectID{firstByte},
		NbfcID:         primitive.ObjectID{0x0a},
		UserID:         int64(firstByte),
		Status:         consts.StatusInitiated,
		IsActive:       true,
		ReservedAmount: reserved,
		CreatedAt:      time.Now().Add(-4 * time.Hour),
	}
}

func TestSweepExpiredReleasesStaleRecords(t *testing.T) {
	loanRecords := new(MockLoanRecordsRepo)
	lifecycle := new(MockLifecycleService)
	svc := NewSweeperService(loanRecords, lifecycle, 3*time.Hour)

	first := staleRecord(0x01, 500)
	second := staleRecord(0x02, 800)
	loanRecords.On("FindStaleInitiated", mock.Anything, mock.MatchedBy(func(before time.Time) bool {
		// Cutoff sits roughly the expiry age in the past.
		return time.Since(before) > 2*time.Hour
	})).Return([]storemodels.LoanRecord{first, second}, nil)
	lifecycle.On("ExpireRecord", mock.Anything, first).Return(nil)
	lifecycle.On("ExpireRecord", mock.Anything, second).Return(nil)

	err := svc.SweepExpired(context.Background())

	assert.NoError(t, err)
	lifecycle.AssertExpectations(t)
}

func TestSweepExpiredContinuesPastFailures(t *testing.T) {
	loanRecords := new(MockLoanRecordsRepo)
	lifecycle := new(MockLifecycleService)
	svc := NewSweeperService(loanRecords, lifecycle, 3*time.Hour)

	first := staleRecord(0x01, 500)
	second := staleRecord(0x02, 800)
	loanRecords.On("FindStaleInitiated", mock.Anything, mock.Anything).
		Return([]storemodels.LoanRecord{first, second}, nil)
	lifecycle.On("ExpireRecord", mock.Anything, first).Return(assert.AnError)
	lifecycle.On("ExpireRecord", mock.Anything, second).Return(nil)

	err := svc.SweepExpired(context.Background())

	assert.NoError(t, err)
	lifecycle.AssertExpectations(t)
}

func TestSweepExpiredNothingStale(t *testing.T) {
	loanRecords := new(MockLoanRecordsRepo)
	lifecycle := new(MockLifecycleService)
	svc := NewSweeperService(loanRecords, lifecycle, 0)

	loanRecords.On("FindStaleInitiated", mock.Anything, mock.Anything).
		Return([]storemodels.LoanRecord{}, nil)

	err := svc.SweepExpired(context.Background())

	assert.NoError(t, err)
	lifecycle.AssertNotCalled(t, "ExpireRecord", mock.Anything, mock.Anything)
}

func TestSweepExpiredLookupFailure(t *testing.T) {
	loanRecords := new(MockLoanRecordsRepo)
	lifecycle := new(MockLifecycleService)
	svc := NewSweeperService(loanRecords, lifecycle, 3*time.Hour)

	loanRecords.On("FindStaleInitiated", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	err := svc.SweepExpired(context.Background())

	assert.Error(t, err)
}
