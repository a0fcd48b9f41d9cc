package get_provider_bookings

import (
	"errors"
	"net/http"

	"github.com/terapiemd/booking-service/internal/api/handlers"
	"github.com/terapiemd/booking-service/internal/api/middleware"
	"github.com/terapiemd/booking-service/internal/service/bookings"
)

const (
	msgMissingUserID = "authentication required"
	msgNoProfile     = "no therapist or business profile for this account"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/me/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetProviderBookings(r.Context(), userID)
	if err != nil {
		if errors.Is(err, bookings.ErrProviderNotFound) {
			h.logger.Warn("GET /providers/me/bookings - No provider profile: user_id=%s", userID)
			handlers.RespondNotFound(w, msgNoProfile)
			return
		}
		h.logger.Error("GET /providers/me/bookings - Failed to get bookings: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/me/bookings - Bookings retrieved successfully: user_id=%s, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
