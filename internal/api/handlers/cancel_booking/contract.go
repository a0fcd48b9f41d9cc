package cancel_booking

import (
	"context"

	"github.com/google/uuid"

	updateStatus "github.com/terapiemd/booking-service/internal/usecase/update_booking_status"
)

type CancelBookingUseCase interface {
	Cancel(ctx context.Context, actorID, bookingID uuid.UUID, reason *string) (*updateStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
