package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown status filter
	ErrInvalidStatus = errors.New("invalid booking status")
)

// GetClientBookingsRequest lists a client's own bookings
type GetClientBookingsRequest struct {
	UserID uuid.UUID
	Status *string
}

// ClientResponse is the client data shown to a provider
type ClientResponse struct {
	Name   string  `json:"name"`
	Email  *string `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Masked bool    `json:"masked"`
}

// BookingResponse is a booking as returned by the API
type BookingResponse struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"clientId"`
	TherapistID  *uuid.UUID      `json:"therapistId,omitempty"`
	BusinessID   *uuid.UUID      `json:"businessId,omitempty"`
	OfferID      *uuid.UUID      `json:"offerId,omitempty"`
	Date         string          `json:"date"` // "2025-12-02"
	Time         string          `json:"time"` // "10:00"
	Status       string          `json:"status"`
	Notes        *string         `json:"notes,omitempty"`
	ProviderName string          `json:"providerName,omitempty"`
	Client       *ClientResponse `json:"client,omitempty"`
	UnreadCount  *int            `json:"unreadCount,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse is a list of bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// MessageResponse is one chat message
type MessageResponse struct {
	ID        uuid.UUID  `json:"id"`
	BookingID uuid.UUID  `json:"bookingId"`
	SenderID  uuid.UUID  `json:"senderId"`
	Content   string     `json:"content"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// MessageListResponse is a booking thread, oldest first
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// FromDomainBooking converts a booking to its DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:           b.ID,
		ClientID:     b.ClientID,
		TherapistID:  b.TherapistID,
		BusinessID:   b.BusinessID,
		OfferID:      b.OfferID,
		Date:         b.Date.Format(domain.DateFormat),
		Time:         b.Time.String(),
		Status:       string(b.Status),
		Notes:        b.Notes,
		ProviderName: b.ProviderName,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}

	if b.Client != nil {
		resp.Client = &ClientResponse{
			Name:   b.Client.Name,
			Email:  b.Client.Email,
			Phone:  b.Client.Phone,
			Masked: b.Client.Masked,
		}
	}

	return resp
}

// FromDomainBookingList converts a list of bookings
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainMessages converts a thread
func FromDomainMessages(messages []*domain.Message) *MessageListResponse {
	resp := &MessageListResponse{
		Messages: make([]MessageResponse, 0, len(messages)),
	}

	for _, m := range messages {
		resp.Messages = append(resp.Messages, MessageResponse{
			ID:        m.ID,
			BookingID: m.BookingID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			ReadAt:    m.ReadAt,
			CreatedAt: m.CreatedAt,
		})
	}

	return resp
}

// ToDomainBookingStatus parses a status filter
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
