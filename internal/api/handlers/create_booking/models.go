package create_booking

import (
	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/service/bookings/models"
	createBooking "github.com/terapiemd/booking-service/internal/usecase/create_booking"
	"github.com/terapiemd/booking-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID *uuid.UUID `json:"providerId,omitempty"`
	BusinessID *uuid.UUID `json:"businessId,omitempty"`
	OfferID    *uuid.UUID `json:"offerId,omitempty"`
	Date       string     `json:"date" validate:"required"` // "2025-12-02"
	Time       string     `json:"time" validate:"required"` // "10:00"
	Notes      *string    `json:"notes,omitempty" validate:"omitempty,max=4000"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Success bool                    `json:"success"`
	Booking *models.BookingResponse `json:"booking"`
}

// ToUseCaseRequest parses date and time into the use case request
func (r *CreateBookingRequest) ToUseCaseRequest(clientID uuid.UUID) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	at, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID: clientID,
		Target: domain.TargetRef{
			ProviderID: r.ProviderID,
			BusinessID: r.BusinessID,
			OfferID:    r.OfferID,
		},
		Date:  date,
		Time:  at,
		Notes: r.Notes,
	}, nil
}

// FromUseCaseResponse converts the created booking
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Success: true,
		Booking: models.FromDomainBooking(resp.Booking),
	}
}
