package interfaces

import (
	"context"

	"cashflow-router/internal/pkg/store/models"
)

// BookingAuditPublisherInterface feeds the booking log audit topic. Publish
// failures are logged and never block the booking path.
type BookingAuditPublisherInterface interface {
	PublishBookingLog(ctx context.Context, log models.BookingLog) error
	Close()
}
