package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/pkg/types"
)

// Request is a client's reservation attempt
type Request struct {
	ClientID uuid.UUID
	Target   domain.TargetRef
	Date     time.Time        // UTC midnight
	Time     types.TimeString // HH:MM
	Notes    *string
}

// Options are the optional hardening switches
type Options struct {
	EnforceSchedule bool // reject times outside the target's base slots
	RejectPastDates bool // reject dates before today (UTC)
}

// Response carries the stored booking
type Response struct {
	Booking *domain.Booking
}
