package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrTargetMissing is returned when a request names no provider, business or offer
	ErrTargetMissing = errors.New("domain: one of providerId, businessId or offerId is required")

	// ErrTargetAmbiguous is returned when both a therapist and a business are named
	ErrTargetAmbiguous = errors.New("domain: providerId and businessId are mutually exclusive")
)

// TargetRef is the caller-supplied way to point at a bookable counterparty
type TargetRef struct {
	ProviderID *uuid.UUID // therapist profile
	BusinessID *uuid.UUID
	OfferID    *uuid.UUID
}

// Validate checks that the reference names exactly one therapist or business,
// directly or through an offer
func (r TargetRef) Validate() error {
	if r.ProviderID != nil && r.BusinessID != nil {
		return ErrTargetAmbiguous
	}
	if r.ProviderID == nil && r.BusinessID == nil && r.OfferID == nil {
		return ErrTargetMissing
	}
	return nil
}

// Direct returns the target named without going through an offer
func (r TargetRef) Direct() (Target, bool) {
	if r.ProviderID != nil {
		return Target{Kind: ProviderKindTherapist, ProviderID: *r.ProviderID}, true
	}
	if r.BusinessID != nil {
		return Target{Kind: ProviderKindBusiness, ProviderID: *r.BusinessID}, true
	}
	return Target{}, false
}

// Target is a resolved counterparty: the profile reservations are recorded against
type Target struct {
	Kind       ProviderKind
	ProviderID uuid.UUID
}

// ResolvedTarget carries the loaded records behind a TargetRef
type ResolvedTarget struct {
	Target   Target
	Provider *Provider
	Offer    *Offer // set when resolved through an offer
}
