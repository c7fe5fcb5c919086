package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/service/interfaces"
)

type NbfcHandler struct {
	nbfcRepo interfaces.NbfcRepositoryInterface
}

func NewNbfcHandler(nbfcRepo interfaces.NbfcRepositoryInterface) *NbfcHandler {
	return &NbfcHandler{nbfcRepo: nbfcRepo}
}

// CreateNbfc registers a lending partner. Partners default to enabled.
func (h *NbfcHandler) CreateNbfc(c *gin.Context) {
	var req models.NbfcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	now := time.Now().UTC()
	id, err := h.nbfcRepo.CreateNbfc(c.Request.Context(), storemodels.Nbfc{
		Name:             req.Name,
		IsEnabled:        enabled,
		DelayInDisbursal: req.DelayInDisbursal,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"nbfcId": id.Hex()})
}

// UpdateNbfc toggles enablement or adjusts the disbursal delay.
func (h *NbfcHandler) UpdateNbfc(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("nbfcId"))
	if err != nil {
		respondError(c, consts.ErrNbfcNotFound)
		return
	}

	var req models.NbfcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"name": req.Name}
	if req.IsEnabled != nil {
		update["isEnabled"] = *req.IsEnabled
	}
	if req.DelayInDisbursal != nil {
		update["delayInDisbursal"] = *req.DelayInDisbursal
	}

	if err := h.nbfcRepo.UpdateNbfc(c.Request.Context(), id, update); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "NBFC updated"})
}

// ListNbfcs returns the enabled partner roster.
func (h *NbfcHandler) ListNbfcs(c *gin.Context) {
	nbfcs, err := h.nbfcRepo.ListEnabledNbfcs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nbfcs": nbfcs})
}
