package domain

import (
	"time"

	"github.com/google/uuid"
)

// Review is a client's rating of a provider, earned by a completed booking.
// A client reviews each provider at most once.
type Review struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	ClientID    uuid.UUID
	TherapistID *uuid.UUID
	BusinessID  *uuid.UUID
	Rating      int
	Comment     *string
	CreatedAt   time.Time
}

// Target returns the reviewed profile
func (r *Review) Target() (Target, bool) {
	if r.TherapistID != nil {
		return Target{Kind: ProviderKindTherapist, ProviderID: *r.TherapistID}, true
	}
	if r.BusinessID != nil {
		return Target{Kind: ProviderKindBusiness, ProviderID: *r.BusinessID}, true
	}
	return Target{}, false
}
