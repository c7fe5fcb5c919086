package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cashflow-router/internal/pkg/models"
	"cashflow-router/internal/service/interfaces"
)

type AllocationHandler struct {
	allocator interfaces.AllocatorServiceInterface
}

func NewAllocationHandler(allocator interfaces.AllocatorServiceInterface) *AllocationHandler {
	return &AllocationHandler{allocator: allocator}
}

// Allocate routes one loan request to an NBFC.
func (h *AllocationHandler) Allocate(c *gin.Context) {
	var req models.AllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := h.allocator.AllocateNbfc(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, decision)
}
