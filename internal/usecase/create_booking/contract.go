package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/notify"
	"github.com/terapiemd/booking-service/pkg/types"
)

// BookingRepository is the write side of the reservation ledger
type BookingRepository interface {
	IsSlotClaimed(ctx context.Context, target domain.Target, date time.Time, at types.TimeString) (bool, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// SlotResolver resolves targets and their offerable slots
type SlotResolver interface {
	ResolveTarget(ctx context.Context, ref domain.TargetRef) (*domain.ResolvedTarget, error)
	ResolveBaseSlots(resolved *domain.ResolvedTarget, date time.Time) []string
}

// TransactionManager runs fn in a serializable transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Dispatcher is the best-effort notification sink
type Dispatcher = notify.Dispatcher

// Metrics counts booking outcomes
type Metrics interface {
	BookingCreated()
	SlotConflict()
}

// TimeProvider returns the current time
type TimeProvider interface {
	Now() time.Time
}

// Logger interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
