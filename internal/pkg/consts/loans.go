package consts

import "time"

// User segments tracked independently in the capacity ledger.
type Segment string

const (
	SegmentOld Segment = "O"
	SegmentNew Segment = "N"
)

func (s Segment) IsValid() bool {
	return s == SegmentOld || s == SegmentNew
}

// Loan record statuses.
type LoanStatus string

const (
	StatusInitiated LoanStatus = "I"
	StatusPassed    LoanStatus = "P"
	StatusFailed    LoanStatus = "F"
)

// Lifecycle events accepted by the transition endpoint.
type RequestType string

const (
	RequestCreditLimit RequestType = "LAN"
	RequestLoanApplied RequestType = "LAD"
	RequestLoanFailed  RequestType = "LF"
	RequestLoanExpired RequestType = "EXP"
)

func (r RequestType) IsValid() bool {
	switch r {
	case RequestCreditLimit, RequestLoanApplied, RequestLoanFailed, RequestLoanExpired:
		return true
	}
	return false
}

const (
	// Payday loans run for a fixed term; EMI products ("E<N>") run N months.
	LoanTypePayday    = "P"
	EmiLoanTypePrefix = "E"
	PaydayTenureDays  = 30
	DaysPerEmiMonth   = 30

	// Initiated records untouched this long are swept to expired.
	InitiatedExpiryAge = 3 * time.Hour

	LoanDayFormat = "2006-01-02"
)
