package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/service/interfaces"
)

type EligibilityRuleHandler struct {
	rulesRepo interfaces.EligibilityRulesRepositoryInterface
	nbfcRepo  interfaces.NbfcRepositoryInterface
}

func NewEligibilityRuleHandler(
	rulesRepo interfaces.EligibilityRulesRepositoryInterface,
	nbfcRepo interfaces.NbfcRepositoryInterface,
) *EligibilityRuleHandler {
	return &EligibilityRuleHandler{rulesRepo: rulesRepo, nbfcRepo: nbfcRepo}
}

// UpsertRule creates the rule for an NBFC and loan type, or replaces the
// thresholds of the existing one.
func (h *EligibilityRuleHandler) UpsertRule(c *gin.Context) {
	var req models.EligibilityRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nbfcID, err := primitive.ObjectIDFromHex(req.NbfcID)
	if err != nil {
		respondError(c, consts.ErrNbfcNotFound)
		return
	}
	nbfc, err := h.nbfcRepo.GetNbfcByID(c.Request.Context(), nbfcID)
	if err != nil {
		respondError(c, err)
		return
	}
	if nbfc == nil {
		respondError(c, consts.ErrNbfcNotFound)
		return
	}

	created, err := h.rulesRepo.UpsertRule(c.Request.Context(), storemodels.EligibilityRule{
		NbfcID:        nbfcID,
		LoanType:      req.LoanType,
		MinLoanTenure: req.MinLoanTenure,
		MaxLoanTenure: req.MaxLoanTenure,
		MinAmount:     req.MinAmount,
		MaxAmount:     req.MaxAmount,
		MinCibilScore: req.MinCibilScore,
		MinAge:        req.MinAge,
		MaxAge:        req.MaxAge,
		ShouldCheck:   req.ShouldCheck,
		ShouldAssign:  req.ShouldAssign,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"created": created})
}

// GetRules lists the rules configured for a loan type.
func (h *EligibilityRuleHandler) GetRules(c *gin.Context) {
	loanType := c.Query("loanType")
	if loanType == "" {
		respondError(c, consts.ErrInvalidLoanType)
		return
	}

	rules, err := h.rulesRepo.GetRulesByLoanType(c.Request.Context(), loanType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": rules})
}
