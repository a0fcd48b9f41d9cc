package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// BookingRepository is the read side of the booking ledger
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByClient(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error)
	ListByProvider(ctx context.Context, target domain.Target) ([]*domain.Booking, error)
}

// ProviderRepository finds the profile an account owns
type ProviderRepository interface {
	GetProviderByUserID(ctx context.Context, kind domain.ProviderKind, userID uuid.UUID) (*domain.Provider, error)
}

// MessageRepository reads booking threads
type MessageRepository interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*domain.Message, error)
	MarkRead(ctx context.Context, bookingID, readerID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, bookingIDs []uuid.UUID, readerID uuid.UUID) (map[uuid.UUID]int, error)
}

// Logger interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
