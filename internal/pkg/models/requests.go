package models

// AllocationRequest asks the router which NBFC should serve a loan request.
// AssignedNbfcID is an optional hint naming the partner already attached to
// the user; it is honored when that partner can still serve the request.
type AllocationRequest struct {
	UserID         int64   `json:"userId" binding:"required"`
	LoanType       string  `json:"loanType" binding:"required,loantype"`
	UserType       string  `json:"userType" binding:"required,oneof=O N"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	CibilScore     int     `json:"cibilScore" binding:"required"`
	Age            int     `json:"age" binding:"required,gt=0"`
	AssignedNbfcID string  `json:"assignedNbfcId"`
}

// AllocationResponse carries the routing decision.
type AllocationResponse struct {
	NbfcID   string `json:"nbfcId"`
	NbfcName string `json:"nbfcName"`
}

// TransitionRequest drives the loan lifecycle endpoint. NbfcID is required for
// LAN; later events locate the record by user and day.
type TransitionRequest struct {
	RequestType   string  `json:"requestType" binding:"required,oneof=LAN LAD LF"`
	UserID        int64   `json:"userId" binding:"required"`
	NbfcID        string  `json:"nbfcId"`
	LoanType      string  `json:"loanType"`
	UserType      string  `json:"userType"`
	Amount        float64 `json:"amount"`
	CreditLimit   float64 `json:"creditLimit"`
	CibilScore    int     `json:"cibilScore"`
	Age           int     `json:"age"`
	FailureReason string  `json:"failureReason"`
}

// CapitalInflowRequest, HoldCashRequest and UserRatioRequest register
// operator-supplied inputs for a date window. Dates are YYYY-MM-DD.
type CapitalInflowRequest struct {
	NbfcID        string  `json:"nbfcId" binding:"required"`
	StartDate     string  `json:"startDate" binding:"required"`
	EndDate       string  `json:"endDate" binding:"required"`
	CapitalInflow float64 `json:"capitalInflow" binding:"required"`
}

type HoldCashRequest struct {
	NbfcID    string  `json:"nbfcId" binding:"required"`
	StartDate string  `json:"startDate" binding:"required"`
	EndDate   string  `json:"endDate" binding:"required"`
	HoldCash  float64 `json:"holdCash" binding:"min=0,max=100"`
}

type UserRatioRequest struct {
	NbfcID        string  `json:"nbfcId" binding:"required"`
	StartDate     string  `json:"startDate" binding:"required"`
	EndDate       string  `json:"endDate" binding:"required"`
	OldPercentage float64 `json:"oldPercentage" binding:"min=0,max=100"`
	NewPercentage float64 `json:"newPercentage" binding:"min=0,max=100"`
}

// EligibilityRuleRequest creates or updates the rule for an NBFC and loan type.
type EligibilityRuleRequest struct {
	NbfcID        string  `json:"nbfcId" binding:"required"`
	LoanType      string  `json:"loanType" binding:"required,loantype"`
	MinLoanTenure int     `json:"minLoanTenure" binding:"min=0"`
	MaxLoanTenure int     `json:"maxLoanTenure" binding:"min=0"`
	MinAmount     float64 `json:"minAmount" binding:"min=0"`
	MaxAmount     float64 `json:"maxAmount" binding:"min=0"`
	MinCibilScore int     `json:"minCibilScore"`
	MinAge        *int    `json:"minAge"`
	MaxAge        *int    `json:"maxAge"`
	ShouldCheck   bool    `json:"shouldCheck"`
	ShouldAssign  bool    `json:"shouldAssign"`
}

// NbfcRequest registers a lending partner.
type NbfcRequest struct {
	Name             string   `json:"name" binding:"required"`
	IsEnabled        *bool    `json:"isEnabled"`
	DelayInDisbursal *float64 `json:"delayInDisbursal"`
}

// CashFlowResponse is the daily roll-up view for one NBFC and date.
type CashFlowResponse struct {
	NbfcID              string  `json:"nbfcId"`
	Date                string  `json:"date"`
	PredictedCashInflow float64 `json:"predictedCashInflow"`
	Collection          float64 `json:"collection"`
	CarryForward        float64 `json:"carryForward"`
	AvailableCashFlow   float64 `json:"availableCashFlow"`
	LoanBooked          float64 `json:"loanBooked"`
	Variance            float64 `json:"variance"`
}
