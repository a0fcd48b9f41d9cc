package notify

import (
	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// Kind identifies what happened to a booking
type Kind string

const (
	KindBookingRequest      Kind = "booking_request"       // client booked, provider is told
	KindBookingStatusChange Kind = "booking_status_change" // provider moved the booking, client is told
	KindBookingCancellation Kind = "booking_cancellation"  // client cancelled, provider is told
	KindNewMessage          Kind = "new_message"
)

// IsValid reports whether k is a known kind
func (k Kind) IsValid() bool {
	switch k {
	case KindBookingRequest, KindBookingStatusChange, KindBookingCancellation, KindNewMessage:
		return true
	}
	return false
}

// Delivery outcomes used as the metrics result label
const (
	ResultSent    = "sent"
	ResultQueued  = "queued"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// Notification is everything needed to tell one account about a booking event.
// It is serialized as JSON on the notification queue.
type Notification struct {
	Kind      Kind      `json:"kind"`
	BookingID uuid.UUID `json:"booking_id"`

	RecipientID   uuid.UUID `json:"recipient_id"`
	RecipientName string    `json:"recipient_name,omitempty"`

	// CounterpartID is the other party: the client for provider-bound kinds,
	// the provider account for client-bound kinds, the sender for messages
	CounterpartID   uuid.UUID `json:"counterpart_id,omitempty"`
	CounterpartName string    `json:"counterpart_name,omitempty"`

	ProviderID   uuid.UUID `json:"provider_id,omitempty"` // booked profile
	ProviderName string    `json:"provider_name,omitempty"`

	Date           string               `json:"date,omitempty"`
	Time           string               `json:"time,omitempty"`
	Notes          string               `json:"notes,omitempty"`
	Status         domain.BookingStatus `json:"status,omitempty"`
	Reason         string               `json:"reason,omitempty"`
	MessagePreview string               `json:"message_preview,omitempty"`
	Link           string               `json:"link,omitempty"`
}
