package consts

import "cashflow-router/internal/pkg/models"

var (
	// ErrNoPartnerAvailable is a decision outcome, not a transport error. Callers
	// must branch on it instead of treating it as a failure.
	ErrNoPartnerAvailable = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_ALLOCATION_NO_PARTNER_AVAILABLE",
		Message: "no eligible NBFC has capacity for this request",
	}
	ErrNbfcNotFound = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_VALIDATION_NBFC_NOT_FOUND",
		Message: "NBFC does not exist or is disabled",
	}
	ErrInvalidLoanType = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_VALIDATION_LOAN_TYPE_INVALID",
		Message: "loan type must be P or E<months>",
	}
	ErrInvalidSegment = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_VALIDATION_SEGMENT_INVALID",
		Message: "user segment must be O or N",
	}
	ErrInvalidRequestType = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_VALIDATION_REQUEST_TYPE_INVALID",
		Message: "request type not recognised",
	}
	ErrDuplicateEligibilityRule = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_VALIDATION_DUPLICATE_ELIGIBILITY_RULE",
		Message: "an eligibility rule already exists for this NBFC and loan type",
	}
	ErrLoanRecordNotFound = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_LIFECYCLE_LOAN_RECORD_NOT_FOUND",
		Message: "no active loan record for this user today",
	}
	ErrLoanRecordTerminal = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_LIFECYCLE_LOAN_RECORD_TERMINAL",
		Message: "loan record already failed and cannot transition",
	}
	ErrLedgerAdjustFailed = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_LEDGER_ADJUST_RETRIES_EXHAUSTED",
		Message: "capacity ledger adjustment failed after retries",
	}
	ErrPredictionUpstream = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_REQUEST_PREDICTION_UPSTREAM_FAILED",
		Message: "cash flow prediction upstream request failed",
	}
	ErrMalformedPredictionData = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_REQUEST_PREDICTION_DATA_MALFORMED",
		Message: "cash flow prediction upstream returned malformed data",
	}
	ErrCashFlowDataNotFound = &models.CustomError{
		Code:    "CASHFLOW_ROUTER_CASH_FLOW_DATA_NOT_FOUND",
		Message: "no cash flow data for the given NBFC and date",
	}
)
