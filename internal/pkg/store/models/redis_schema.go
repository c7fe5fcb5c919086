package models

import (
	"fmt"

	"cashflow-router/internal/pkg/consts"
)

const (
	AvailableKeyPattern = "availableCashFlow:%s" // availableCashFlow:<nbfcId>
	BookedKeyPattern    = "loanBookedToday:%s"   // loanBookedToday:<nbfcId>

	FieldOld   = "O"
	FieldNew   = "N"
	FieldTotal = "T"
)

func AvailableKeyBuilder(nbfcID string) string {
	return fmt.Sprintf(AvailableKeyPattern, nbfcID)
}

func BookedKeyBuilder(nbfcID string) string {
	return fmt.Sprintf(BookedKeyPattern, nbfcID)
}

// CapacitySnapshot is one NBFC's ledger view for a single key. Total must equal
// Old + New after every write.
type CapacitySnapshot struct {
	Old   float64 `json:"old"`
	New   float64 `json:"new"`
	Total float64 `json:"total"`
}

func (s CapacitySnapshot) Segment(seg consts.Segment) float64 {
	if seg == consts.SegmentOld {
		return s.Old
	}
	return s.New
}

func SegmentField(seg consts.Segment) string {
	if seg == consts.SegmentOld {
		return FieldOld
	}
	return FieldNew
}
