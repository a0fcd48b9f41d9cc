package update_booking_status

import (
	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// Request asks to move a booking to Status on behalf of ActorID
type Request struct {
	ActorID   uuid.UUID
	BookingID uuid.UUID
	Status    domain.BookingStatus
	Reason    *string
}

// Response carries the booking after the change
type Response struct {
	Booking  *domain.Booking
	Previous domain.BookingStatus
	Role     domain.Role
}
