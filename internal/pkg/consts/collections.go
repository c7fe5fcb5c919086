package consts

const (
	NbfcCollection            = "nbfcBranchMaster"
	EligibilityRuleCollection = "nbfcEligibilityRules"
	LoanRecordCollection      = "loanRecords"
	BookingLogCollection      = "loanBookedLogs"
	CapitalInflowCollection   = "capitalInflowData"
	HoldCashCollection        = "holdCashData"
	UserRatioCollection       = "userRatioData"
	ProjectionCollection      = "projectionCollectionData"
	DailyCashFlowCollection   = "nbfcDateWiseCashFlow"
)
