package consts

// Reason tags written to every booking log entry. Append-only audit, one per
// ledger adjustment.
const (
	ReasonCreditLimitReserved = "amount reserved against credit limit"
	ReasonActualAmountBooked  = "actual loan amount booked"
	ReasonFailureRelease      = "reserved amount released on loan failure"
	ReasonExpiryRelease       = "reserved amount released on loan expiry"
)
