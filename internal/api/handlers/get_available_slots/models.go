package get_available_slots

import (
	"net/url"

	"github.com/terapiemd/booking-service/internal/api/handlers"
	"github.com/terapiemd/booking-service/internal/domain"
	getAvailableSlots "github.com/terapiemd/booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Slots []string `json:"slots"`
}

// ToUseCaseRequest parses the query parameters
func ToUseCaseRequest(query url.Values) (*getAvailableSlots.Request, error) {
	var (
		ref domain.TargetRef
		err error
	)

	if ref.ProviderID, err = handlers.ParseOptionalUUID(query.Get("providerId")); err != nil {
		return nil, err
	}
	if ref.BusinessID, err = handlers.ParseOptionalUUID(query.Get("businessId")); err != nil {
		return nil, err
	}
	if ref.OfferID, err = handlers.ParseOptionalUUID(query.Get("offerId")); err != nil {
		return nil, err
	}

	date, err := domain.ParseDate(query.Get("date"))
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{Target: ref, Date: date}, nil
}

// FromUseCaseResponse converts the use case response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []string{}
	}
	return &AvailableSlotsResponse{Slots: slots}
}
