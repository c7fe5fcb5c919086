package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cashflow-router/internal/pkg/models"
	"cashflow-router/internal/service/interfaces"
)

type TransitionHandler struct {
	lifecycle interfaces.LifecycleServiceInterface
}

func NewTransitionHandler(lifecycle interfaces.LifecycleServiceInterface) *TransitionHandler {
	return &TransitionHandler{lifecycle: lifecycle}
}

// Transition applies one lifecycle event (LAN, LAD, LF) to the caller's
// booking slot for today.
func (h *TransitionHandler) Transition(c *gin.Context) {
	var req models.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.lifecycle.HandleTransition(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"loanRecordId": record.ID.Hex(),
		"nbfcId":       record.NbfcID.Hex(),
		"status":       record.Status,
		"isBooked":     record.IsBooked,
	})
}
