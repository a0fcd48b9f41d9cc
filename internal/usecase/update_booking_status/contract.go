package update_booking_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/notify"
)

// BookingRepository reads and rewrites a single booking
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, notes *string) error
}

// TransactionManager runs fn in a transaction
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Dispatcher is the best-effort notification sink
type Dispatcher = notify.Dispatcher

// Metrics counts status changes
type Metrics interface {
	StatusTransition(from, to string)
}

// Logger interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
