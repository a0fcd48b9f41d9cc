package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// ScheduleRepository reads provider schedules and offers
type ScheduleRepository interface {
	GetProvider(ctx context.Context, kind domain.ProviderKind, id uuid.UUID) (*domain.Provider, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
}

// BookingRepository is the read side of the reservation ledger
type BookingRepository interface {
	ListClaimedTimes(ctx context.Context, target domain.Target, date time.Time) (map[string]struct{}, error)
}

// Logger interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
