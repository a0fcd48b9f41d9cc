package get_available_slots

import (
	"fmt"

	"github.com/terapiemd/booking-service/internal/domain"
)

// validateRequest validates the request
func validateRequest(req *Request) error {
	if err := req.Target.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// offerBelongsTo reports whether target is one of the offer's owners
func offerBelongsTo(offer *domain.Offer, target domain.Target) bool {
	switch target.Kind {
	case domain.ProviderKindTherapist:
		return offer.ProviderID != nil && *offer.ProviderID == target.ProviderID
	case domain.ProviderKindBusiness:
		return offer.BusinessID != nil && *offer.BusinessID == target.ProviderID
	}
	return false
}
