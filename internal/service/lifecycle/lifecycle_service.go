package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"cashflow-router/internal/pkg/consts"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/models"
	storemodels "cashflow-router/internal/pkg/store/models"
	"cashflow-router/internal/service/allocation"
	"cashflow-router/internal/service/interfaces"
)

// LifecycleService owns the single booking slot per (user, day). Every
// transition applies exactly one durable record write, one booking log append
// and one ledger adjustment, in that order: a crash mid-sequence leaves the
// ledger stale, which the recompute job corrects, never the durable record.
type LifecycleService struct {
	loanRecords interfaces.LoanRecordsRepositoryInterface
	bookingLogs interfaces.BookingLogsRepositoryInterface
	ledger      interfaces.CapacityLedgerInterface
	nbfcRepo    interfaces.NbfcRepositoryInterface
	audit       interfaces.BookingAuditPublisherInterface
}

func NewLifecycleService(
	loanRecords interfaces.LoanRecordsRepositoryInterface,
	bookingLogs interfaces.BookingLogsRepositoryInterface,
	ledger interfaces.CapacityLedgerInterface,
	nbfcRepo interfaces.NbfcRepositoryInterface,
	audit interfaces.BookingAuditPublisherInterface,
) *LifecycleService {
	return &LifecycleService{
		loanRecords: loanRecords,
		bookingLogs: bookingLogs,
		ledger:      ledger,
		nbfcRepo:    nbfcRepo,
		audit:       audit,
	}
}

func (s *LifecycleService) HandleTransition(ctx context.Context, req models.TransitionRequest) (*storemodels.LoanRecord, error) {
	requestType := consts.RequestType(req.RequestType)
	if !requestType.IsValid() {
		return nil, consts.ErrInvalidRequestType
	}

	loanDay := time.Now().Format(consts.LoanDayFormat)
	record, err := s.loanRecords.GetActiveRecord(ctx, req.UserID, loanDay)
	if err != nil {
		return nil, err
	}

	switch requestType {
	case consts.RequestCreditLimit:
		return s.handleCreditLimit(ctx, req, record, loanDay)
	case consts.RequestLoanApplied:
		return s.handleLoanApplied(ctx, req, record)
	case consts.RequestLoanFailed:
		return s.handleRelease(ctx, record, req.FailureReason, consts.ReasonFailureRelease)
	case consts.RequestLoanExpired:
		return s.handleRelease(ctx, record, "expired after initiation timeout", consts.ReasonExpiryRelease)
	}
	return nil, consts.ErrInvalidRequestType
}

// handleCreditLimit reserves the credit ceiling. A repeat LAN for the same
// user and day re-reserves against the existing slot instead of opening a
// second one.
func (s *LifecycleService) handleCreditLimit(ctx context.Context, req models.TransitionRequest, record *storemodels.LoanRecord, loanDay string) (*storemodels.LoanRecord, error) {
	segment := consts.Segment(req.UserType)
	if record == nil && !segment.IsValid() {
		return nil, consts.ErrInvalidSegment
	}

	if record != nil {
		delta := req.CreditLimit - record.ReservedAmount
		update := bson.M{
			"creditLimit":    req.CreditLimit,
			"reservedAmount": req.CreditLimit,
		}
		if err := s.loanRecords.UpdateRecord(ctx, record.ID, update); err != nil {
			return nil, err
		}
		record.CreditLimit = req.CreditLimit
		record.ReservedAmount = req.CreditLimit

		if err := s.applyLedgerMovement(ctx, record, delta, consts.ReasonCreditLimitReserved); err != nil {
			return nil, err
		}
		return record, nil
	}

	nbfcID, err := primitive.ObjectIDFromHex(req.NbfcID)
	if err != nil {
		return nil, consts.ErrNbfcNotFound
	}
	nbfc, err := s.nbfcRepo.GetNbfcByID(ctx, nbfcID)
	if err != nil {
		return nil, err
	}
	if nbfc == nil || !nbfc.IsEnabled {
		return nil, consts.ErrNbfcNotFound
	}
	if _, err := allocation.TenureDays(req.LoanType); err != nil {
		return nil, err
	}

	newRecord := storemodels.LoanRecord{
		NbfcID:         nbfcID,
		UserID:         req.UserID,
		LoanDay:        loanDay,
		LoanType:       req.LoanType,
		Segment:        segment,
		CreditLimit:    req.CreditLimit,
		ReservedAmount: req.CreditLimit,
		CibilScore:     req.CibilScore,
		Age:            req.Age,
		Status:         consts.StatusInitiated,
		IsActive:       true,
	}
	id, err := s.loanRecords.CreateRecord(ctx, newRecord)
	if err != nil {
		return nil, err
	}
	newRecord.ID = id

	if err := s.applyLedgerMovement(ctx, &newRecord, req.CreditLimit, consts.ReasonCreditLimitReserved); err != nil {
		return nil, err
	}
	return &newRecord, nil
}

// handleLoanApplied books the final amount. The ledger moves by the
// difference against what is currently reserved, so re-applying the same
// amount is a net zero and produces no log entry.
func (s *LifecycleService) handleLoanApplied(ctx context.Context, req models.TransitionRequest, record *storemodels.LoanRecord) (*storemodels.LoanRecord, error) {
	if record == nil {
		return nil, consts.ErrLoanRecordNotFound
	}
	if record.Status == consts.StatusFailed {
		return nil, consts.ErrLoanRecordTerminal
	}

	delta := req.Amount - record.ReservedAmount
	if delta == 0 && record.Status == consts.StatusPassed {
		logger.CtxInfo(ctx, "Idempotent re-booking, no ledger movement",
			zap.Int64("userId", record.UserID), zap.Float64("amount", req.Amount))
		return record, nil
	}

	update := bson.M{
		"status":         consts.StatusPassed,
		"isBooked":       true,
		"amount":         req.Amount,
		"reservedAmount": req.Amount,
	}
	if err := s.loanRecords.UpdateRecord(ctx, record.ID, update); err != nil {
		return nil, err
	}
	record.Status = consts.StatusPassed
	record.IsBooked = true
	record.Amount = req.Amount
	record.ReservedAmount = req.Amount

	if delta != 0 {
		if err := s.applyLedgerMovement(ctx, record, delta, consts.ReasonActualAmountBooked); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// ExpireRecord force-fails a stale initiated record found by the sweeper,
// whatever day it belongs to, and credits back its reservation.
func (s *LifecycleService) ExpireRecord(ctx context.Context, record storemodels.LoanRecord) error {
	_, err := s.handleRelease(ctx, &record, "expired after initiation timeout", consts.ReasonExpiryRelease)
	return err
}

// handleRelease fails the record and credits back whatever it still reserves.
// Terminal: a failed record never transitions again and frees its booking
// slot for the day.
func (s *LifecycleService) handleRelease(ctx context.Context, record *storemodels.LoanRecord, failureReason, logReason string) (*storemodels.LoanRecord, error) {
	if record == nil {
		return nil, consts.ErrLoanRecordNotFound
	}
	if record.Status == consts.StatusFailed {
		return nil, consts.ErrLoanRecordTerminal
	}

	released := record.ReservedAmount
	update := bson.M{
		"status":         consts.StatusFailed,
		"isActive":       false,
		"reservedAmount": float64(0),
		"failureReason":  failureReason,
	}
	if err := s.loanRecords.UpdateRecord(ctx, record.ID, update); err != nil {
		return nil, err
	}
	record.Status = consts.StatusFailed
	record.IsActive = false
	record.ReservedAmount = 0
	record.FailureReason = failureReason

	if released != 0 {
		if err := s.applyLedgerMovement(ctx, record, -released, logReason); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// applyLedgerMovement appends the audit log entry then adjusts the ledger.
// The Kafka publish piggybacks on the log append and never blocks the
// booking path.
func (s *LifecycleService) applyLedgerMovement(ctx context.Context, record *storemodels.LoanRecord, delta float64, reason string) error {
	entry := storemodels.BookingLog{
		GUID:         uuid.NewString(),
		LoanRecordID: record.ID,
		NbfcID:       record.NbfcID,
		UserID:       record.UserID,
		Amount:       delta,
		Reason:       reason,
	}
	if err := s.bookingLogs.AppendLog(ctx, entry); err != nil {
		return err
	}

	if s.audit != nil {
		if err := s.audit.PublishBookingLog(ctx, entry); err != nil {
			logger.CtxWarn(ctx, log_messages.FailedBookingAuditPublish, zap.Error(err), zap.String("GUID", entry.GUID))
		}
	}

	return s.ledger.AdjustBooking(ctx, record.NbfcID.Hex(), record.Segment, delta)
}
