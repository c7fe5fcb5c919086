package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
)

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

func TestHandleNoticeAppliesFailedTransition(t *testing.T) {
	lc := new(MockLifecycleService)
	svc := NewFailureNoticeService(lc)

	lc.On("HandleTransition", mock.Anything, mock.MatchedBy(func(req models.TransitionRequest) bool {
		return req.RequestType == string(consts.RequestLoanFailed) &&
			req.UserID == 42 && req.FailureReason == "lender rejected"
	})).Return(&storemodels.LoanRecord{}, nil)

	err := svc.HandleNotice(context.Background(),
		[]byte(`{"userId":42,"nbfcId":"0a0000000000000000000000","failureReason":"lender rejected"}`))

	assert.NoError(t, err)
	lc.AssertExpectations(t)
}

func TestHandleNoticeMalformedPayloadAcks(t *testing.T) {
	lc := new(MockLifecycleService)
	svc := NewFailureNoticeService(lc)

	err := svc.HandleNotice(context.Background(), []byte(`{not json`))

	assert.NoError(t, err)
	lc.AssertNotCalled(t, "HandleTransition", mock.Anything, mock.Anything)
}

func TestHandleNoticeMissingUserIDAcks(t *testing.T) {
	lc := new(MockLifecycleService)
	svc := NewFailureNoticeService(lc)

	err := svc.HandleNotice(context.Background(), []byte(`{"failureReason":"x"}`))

	assert.NoError(t, err)
	lc.AssertNotCalled(t, "HandleTransition", mock.Anything, mock.Anything)
}

func TestHandleNoticeNoLiveRecordAcks(t *testing.T) {
	lc := new(MockLifecycleService)
	svc := NewFailureNoticeService(lc)

	lc.On("HandleTransition", mock.Anything, mock.Anything).Return(nil, consts.ErrLoanRecordNotFound)

	err := svc.HandleNotice(context.Background(), []byte(`{"userId":42}`))

	assert.NoError(t, err)
}

func TestHandleNoticeTransientErrorNacks(t *testing.T) {
	lc := new(MockLifecycleService)
	svc := NewFailureNoticeService(lc)

	lc.On("HandleTransition", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	err := svc.HandleNotice(context.Background(), []byte(`{"userId":42}`))

	assert.Error(t, err)
}
