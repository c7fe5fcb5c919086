package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/models"
)

type MockAllocatorService struct {
	mock.Mock
}

func (m *MockAllocatorService) AllocateNbfc(ctx context.Context, req models.AllocationRequest) (*models.AllocationResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.AllocationResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func postJSON(handler gin.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	handler(c)
	return w
}

func TestAllocate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	assert.NoError(t, RegisterCustomValidators())

	validBody := `{"userId":42,"loanType":"E6","userType":"N","amount":1000,"cibilScore":720,"age":30}`

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAllocatorService)
		mockService.On("AllocateNbfc", mock.Anything, mock.Anything).
			Return(&models.AllocationResponse{NbfcID: "0a0000000000000000000000", NbfcName: "Alpha"}, nil)
		handler := NewAllocationHandler(mockService)

		w := postJSON(handler.Allocate, "/CashFlowRouter/Allocation", validBody)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"nbfcName":"Alpha"`)
		mockService.AssertExpectations(t)
	})

	t.Run("No partner available", func(t *testing.T) {
		mockService := new(MockAllocatorService)
		mockService.On("AllocateNbfc", mock.Anything, mock.Anything).
			Return(nil, consts.ErrNoPartnerAvailable)
		handler := NewAllocationHandler(mockService)

		w := postJSON(handler.Allocate, "/CashFlowRouter/Allocation", validBody)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), consts.ErrNoPartnerAvailable.ErrorCode())
	})

	t.Run("Invalid loan type rejected by binding", func(t *testing.T) {
		mockService := new(MockAllocatorService)
		handler := NewAllocationHandler(mockService)

		body := `{"userId":42,"loanType":"Z9","userType":"N","amount":1000,"cibilScore":720,"age":30}`
		w := postJSON(handler.Allocate, "/CashFlowRouter/Allocation", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "AllocateNbfc", mock.Anything, mock.Anything)
	})

	t.Run("Missing fields rejected", func(t *testing.T) {
		mockService := new(MockAllocatorService)
		handler := NewAllocationHandler(mockService)

		w := postJSON(handler.Allocate, "/CashFlowRouter/Allocation", `{"userId":42}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
