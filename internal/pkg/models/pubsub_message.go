package models

// LoanFailureNotice is the payload lenders push when a booked loan is later
// rejected on their side.
type LoanFailureNotice struct {
	UserID        int64  `json:"userId"`
	NbfcID        string `json:"nbfcId"`
	FailureReason string `json:"failureReason"`
}
