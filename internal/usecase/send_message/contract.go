package send_message

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/notify"
)

// BookingRepository loads the booking a message belongs to
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// MessageRepository stores messages
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
}

// Dispatcher is the best-effort notification sink
type Dispatcher = notify.Dispatcher

// Logger interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
