package create_review

import (
	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// Request rates the provider of a completed booking
type Request struct {
	ClientID  uuid.UUID
	BookingID uuid.UUID
	Rating    int
	Comment   *string
}

// Response carries the stored review
type Response struct {
	Review *domain.Review
}
