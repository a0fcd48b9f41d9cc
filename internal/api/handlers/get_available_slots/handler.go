package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/terapiemd/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/terapiemd/booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingParams    = "providerId, businessId or offerId and date are required"
	msgInvalidParams    = "invalid id or date, expected UUID and YYYY-MM-DD"
	msgInvalidTarget    = "invalid target"
	msgProviderNotFound = "provider not found"
	msgOfferNotFound    = "offer not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: providerId | businessId | offerId, date (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("date") == "" ||
		(query.Get("providerId") == "" && query.Get("businessId") == "" && query.Get("offerId") == "") {
		h.logger.Warn("GET /availability - Missing parameters: %s", r.URL.RawQuery)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(query)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid target: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTarget)

		case errors.Is(err, getAvailableSlots.ErrProviderNotFound):
			h.logger.Warn("GET /availability - Provider not found: %s", r.URL.RawQuery)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailableSlots.ErrOfferNotFound):
			h.logger.Warn("GET /availability - Offer not found: %s", r.URL.RawQuery)
			handlers.RespondNotFound(w, msgOfferNotFound)

		default:
			h.logger.Error("GET /availability - Failed to get slots: %s, error=%v", r.URL.RawQuery, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots retrieved successfully: %s, slots_count=%d", r.URL.RawQuery, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
