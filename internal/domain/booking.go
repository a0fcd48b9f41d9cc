package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusUnconfirmed BookingStatus = "unconfirmed" // legacy alias of pending
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusCompleted   BookingStatus = "completed"
)

// validTransitions defines the allowed status transitions
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:     {StatusConfirmed, StatusCancelled},
	StatusUnconfirmed: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:   {StatusCompleted, StatusCancelled},
	StatusCancelled:   {},
	StatusCompleted:   {},
}

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo checks if a transition from current status to target is valid
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsPending treats the unconfirmed alias as pending
func (s BookingStatus) IsPending() bool {
	return s == StatusPending || s == StatusUnconfirmed
}

// ClaimsSlot reports whether a booking in this status blocks its slot
func (s BookingStatus) ClaimsSlot() bool {
	return s != StatusCancelled
}

// Role is the part an account plays in a booking
type Role string

const (
	RoleNone      Role = ""
	RoleClient    Role = "client"
	RoleTherapist Role = "therapist"
	RoleBusiness  Role = "business"
)

// NoteLabel is the tag written in front of a reason appended to notes
func (r Role) NoteLabel() string {
	switch r {
	case RoleClient:
		return "Client"
	case RoleTherapist:
		return "Terapeut"
	case RoleBusiness:
		return "Business"
	default:
		return ""
	}
}

// Booking represents a reservation of one provider slot
type Booking struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	TherapistID *uuid.UUID
	BusinessID  *uuid.UUID
	OfferID     *uuid.UUID
	Date        time.Time // UTC midnight
	Time        types.TimeString
	Status      BookingStatus
	Notes       *string

	// Read side, filled by joins
	TherapistUserID *uuid.UUID
	BusinessUserID  *uuid.UUID
	ProviderName    string
	Client          *ClientProfile

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Target returns the profile the booking is recorded against
func (b *Booking) Target() (Target, bool) {
	if b.TherapistID != nil {
		return Target{Kind: ProviderKindTherapist, ProviderID: *b.TherapistID}, true
	}
	if b.BusinessID != nil {
		return Target{Kind: ProviderKindBusiness, ProviderID: *b.BusinessID}, true
	}
	return Target{}, false
}

// ProviderUserID returns the account owning the booked profile
func (b *Booking) ProviderUserID() *uuid.UUID {
	if b.TherapistUserID != nil {
		return b.TherapistUserID
	}
	return b.BusinessUserID
}

// RoleOf resolves the role of userID. The client role wins when an account is both.
func (b *Booking) RoleOf(userID uuid.UUID) Role {
	switch {
	case b.ClientID == userID:
		return RoleClient
	case b.TherapistUserID != nil && *b.TherapistUserID == userID:
		return RoleTherapist
	case b.BusinessUserID != nil && *b.BusinessUserID == userID:
		return RoleBusiness
	default:
		return RoleNone
	}
}

// CounterpartOf returns the other party of the booking for a participant
func (b *Booking) CounterpartOf(userID uuid.UUID) *uuid.UUID {
	if b.ClientID == userID {
		return b.ProviderUserID()
	}
	id := b.ClientID
	return &id
}

// AppendReason returns the notes with a role-tagged reason appended after a blank line
func AppendReason(notes *string, role Role, reason string) *string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return notes
	}
	existing := ""
	if notes != nil {
		existing = *notes
	}
	result := existing + "\n\n[" + role.NoteLabel() + "]: " + reason
	return &result
}

// ClientBookingsFilter narrows a client's booking history
type ClientBookingsFilter struct {
	ClientID uuid.UUID
	Status   *BookingStatus
}
