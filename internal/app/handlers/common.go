package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/models"
)

// respondError maps the error catalogue onto HTTP statuses. NoPartnerAvailable
// is a routing decision, not a failure, but still must not read as success.
func respondError(c *gin.Context, err error) {
	var customErr *models.CustomError
	if !errors.As(err, &customErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch customErr {
	case consts.ErrInvalidLoanType, consts.ErrInvalidSegment, consts.ErrInvalidRequestType:
		status = http.StatusBadRequest
	case consts.ErrNbfcNotFound, consts.ErrLoanRecordNotFound, consts.ErrCashFlowDataNotFound:
		status = http.StatusNotFound
	case consts.ErrDuplicateEligibilityRule, consts.ErrLoanRecordTerminal:
		status = http.StatusConflict
	case consts.ErrNoPartnerAvailable:
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{"code": customErr.ErrorCode(), "error": customErr.Error()})
}
