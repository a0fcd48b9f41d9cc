package update_booking_status

import (
	"errors"
	"net/http"

	"github.com/terapiemd/booking-service/internal/api/handlers"
	"github.com/terapiemd/booking-service/internal/api/middleware"
	"github.com/terapiemd/booking-service/internal/domain"
	updateStatus "github.com/terapiemd/booking-service/internal/usecase/update_booking_status"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body, status is required"
	msgMissingUserID      = "authentication required"
	msgInvalidInput       = "invalid status update"
	msgNotFound           = "booking not found"
	msgForbidden          = "you are not allowed to make this change"
	msgInvalidTransition  = "the booking cannot move to this status"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	_, err = h.useCase.Execute(r.Context(), &updateStatus.Request{
		ActorID:   userID,
		BookingID: bookingID,
		Status:    domain.BookingStatus(req.Status),
		Reason:    req.Reason,
	})
	if err != nil {
		h.respondError(w, "POST /bookings/{id}/status", err)
		return
	}

	h.logger.Info("POST /bookings/{id}/status - Booking updated: booking_id=%s, status=%s, user_id=%s",
		bookingID, req.Status, userID)
	handlers.RespondSuccess(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, updateStatus.ErrBookingNotFound):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, updateStatus.ErrForbidden):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, updateStatus.ErrInvalidTransition):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, updateStatus.ErrInvalidInput):
		h.logger.Warn("%s - %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed to update booking: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
