package send_message

import (
	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// Request posts Content on a booking thread
type Request struct {
	SenderID  uuid.UUID
	BookingID uuid.UUID
	Content   string
}

// Response carries the stored message
type Response struct {
	Message *domain.Message
}
