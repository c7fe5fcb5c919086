package kafka

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/store/models"
)

// BookingAuditService mirrors every booking log entry onto the audit topic so
// downstream reconciliation can follow ledger movements in near real time.
type BookingAuditService struct {
	producer KafkaProducerInterface
}

func NewBookingAuditService(producer KafkaProducerInterface) *BookingAuditService {
	return &BookingAuditService{producer: producer}
}

type bookingAuditMessage struct {
	GUID         string    `json:"guid"`
	LoanRecordID string    `json:"loanRecordId"`
	NbfcID       string    `json:"nbfcId"`
	UserID       int64     `json:"userId"`
	Amount       float64   `json:"amount"`
	Reason       string    `json:"reason"`
	PublishedAt  time.Time `json:"publishedAt"`
}

func (s *BookingAuditService) PublishBookingLog(ctx context.Context, log models.BookingLog) error {
	payload, err := json.Marshal(bookingAuditMessage{
		GUID:         log.GUID,
		LoanRecordID: log.LoanRecordID.Hex(),
		NbfcID:       log.NbfcID.Hex(),
		UserID:       log.UserID,
		Amount:       log.Amount,
		Reason:       log.Reason,
		PublishedAt:  time.Now(),
	})
	if err != nil {
		return err
	}

	if err := s.producer.Publish(ctx, payload); err != nil {
		return err
	}
	logger.CtxDebug(ctx, "Booking audit message published", zap.String("GUID", log.GUID))
	return nil
}

func (s *BookingAuditService) Close() {
	if closer, ok := s.producer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}
