package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cashflow-router/internal/pkg/consts"
)

// Nbfc is a lending partner capacity is routed against. Partners are created by
// operators and only ever disabled, never deleted.
type Nbfc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	IsEnabled        bool               `bson:"isEnabled"`
	DelayInDisbursal *float64           `bson:"delayInDisbursal,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

// EligibilityRule scopes which loan requests an NBFC may serve. At most one rule
// per (NBFC, loan type); duplicate creation is treated as an update.
type EligibilityRule struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	NbfcID        primitive.ObjectID `bson:"nbfcId"`
	LoanType      string             `bson:"loanType"`
	MinLoanTenure int                `bson:"minLoanTenure"` // days
	MaxLoanTenure int                `bson:"maxLoanTenure"` // days
	MinAmount     float64            `bson:"minAmount"`
	MaxAmount     float64            `bson:"maxAmount"`
	MinCibilScore int                `bson:"minCibilScore"`
	MinAge        *int               `bson:"minAge,omitempty"`
	MaxAge        *int               `bson:"maxAge,omitempty"`
	ShouldCheck   bool               `bson:"shouldCheck"`
	ShouldAssign  bool               `bson:"shouldAssign"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

// LoanRecord is the durable booking slot: one non-failed record per (user, day).
// ReservedAmount tracks what is currently held against the capacity ledger for
// this record and is the amount released when the record fails or expires.
type LoanRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	NbfcID         primitive.ObjectID `bson:"nbfcId"`
	UserID         int64              `bson:"userId"`
	LoanDay        string             `bson:"loanDay"` // YYYY-MM-DD
	LoanType       string             `bson:"loanType"`
	Segment        consts.Segment     `bson:"userType"`
	Amount         float64            `bson:"amount"`
	CreditLimit    float64            `bson:"creditLimit"`
	ReservedAmount float64            `bson:"reservedAmount"`
	CibilScore     int                `bson:"cibilScore"`
	Age            int                `bson:"age"`
	Status         consts.LoanStatus  `bson:"status"`
	IsBooked       bool               `bson:"isBooked"`
	IsActive       bool               `bson:"isActive"`
	FailureReason  string             `bson:"failureReason,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

// BookingLog records one ledger movement. Append-only; never read on the
// allocation path.
type BookingLog struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	GUID         string             `bson:"GUID"`
	LoanRecordID primitive.ObjectID `bson:"loanRecordId"`
	NbfcID       primitive.ObjectID `bson:"nbfcId"`
	UserID       int64              `bson:"userId"`
	Amount       float64            `bson:"amount"` // signed ledger delta
	Reason       string             `bson:"reason"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// CapitalInflow, HoldCash and UserRatio are operator-supplied inputs, each valid
// for a date window. The row whose window covers the requested date with the
// latest end date wins.
type CapitalInflow struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	NbfcID        primitive.ObjectID `bson:"nbfcId"`
	StartDate     time.Time          `bson:"startDate"`
	EndDate       time.Time          `bson:"endDate"`
	CapitalInflow float64            `bson:"capitalInflow"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

type HoldCash struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	NbfcID    primitive.ObjectID `bson:"nbfcId"`
	StartDate time.Time          `bson:"startDate"`
	EndDate   time.Time          `bson:"endDate"`
	HoldCash  float64            `bson:"holdCash"` // percentage, 100 blocks disbursal
	CreatedAt time.Time          `bson:"createdAt"`
}

type UserRatio struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	NbfcID        primitive.ObjectID `bson:"nbfcId"`
	StartDate     time.Time          `bson:"startDate"`
	EndDate       time.Time          `bson:"endDate"`
	OldPercentage float64            `bson:"oldPercentage"`
	NewPercentage float64            `bson:"newPercentage"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// ProjectionCollectionData holds one predicted collection amount for an NBFC on
// a collection date, produced by the projection ingestion job.
type ProjectionCollectionData struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	NbfcID         primitive.ObjectID `bson:"nbfcId"`
	DueDate        time.Time          `bson:"dueDate"`
	CollectionDate time.Time          `bson:"collectionDate"`
	Amount         float64            `bson:"amount"`
	CreatedAt      time.Time          `bson:"createdAt"`
}

// DailyCashFlow is the per-NBFC per-day roll-up written by the recompute job and
// served by the cash flow view. CarryForward feeds the next day's computation.
type DailyCashFlow struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	NbfcID              primitive.ObjectID `bson:"nbfcId"`
	Date                string             `bson:"date"` // YYYY-MM-DD
	PredictedCashInflow float64            `bson:"predictedCashInflow"`
	Collection          float64            `bson:"collection"`
	CarryForward        float64            `bson:"carryForward"`
	AvailableCashFlow   float64            `bson:"availableCashFlow"`
	LoanBooked          float64            `bson:"loanBooked"`
	Variance            float64            `bson:"variance"`
	UpdatedAt           time.Time          `bson:"updatedAt"`
}
