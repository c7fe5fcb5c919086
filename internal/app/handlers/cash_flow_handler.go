package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cashflow-router/internal/pkg/models"
	"cashflow-router/internal/service/interfaces"
)

type CashFlowHandler struct {
	cashFlow interfaces.CashFlowServiceInterface
}

func NewCashFlowHandler(cashFlow interfaces.CashFlowServiceInterface) *CashFlowHandler {
	return &CashFlowHandler{cashFlow: cashFlow}
}

// GetDailyCashFlow serves the roll-up for one NBFC and date. Date defaults to
// today when omitted.
func (h *CashFlowHandler) GetDailyCashFlow(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format(time.DateOnly)
	}

	view, err := h.cashFlow.GetDailyCashFlow(c.Request.Context(), c.Param("nbfcId"), date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *CashFlowHandler) RegisterCapitalInflow(c *gin.Context) {
	var req models.CapitalInflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cashFlow.RegisterCapitalInflow(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "capital inflow registered"})
}

func (h *CashFlowHandler) RegisterHoldCash(c *gin.Context) {
	var req models.HoldCashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cashFlow.RegisterHoldCash(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "hold cash registered"})
}

func (h *CashFlowHandler) RegisterUserRatio(c *gin.Context) {
	var req models.UserRatioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cashFlow.RegisterUserRatio(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "user ratio registered"})
}
