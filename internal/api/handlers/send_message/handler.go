package send_message

import (
	"errors"
	"net/http"

	"github.com/terapiemd/booking-service/internal/api/handlers"
	"github.com/terapiemd/booking-service/internal/api/middleware"
	sendMessage "github.com/terapiemd/booking-service/internal/usecase/send_message"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body, content is required"
	msgMissingUserID      = "authentication required"
	msgInvalidContent     = "message must be between 1 and 2000 characters"
	msgNotFound           = "booking not found"
	msgForbidden          = "access denied"
)

type Handler struct {
	useCase SendMessageUseCase
	logger  Logger
}

func NewHandler(useCase SendMessageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/messages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/messages - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/messages - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SendMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/messages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &sendMessage.Request{
		SenderID:  userID,
		BookingID: bookingID,
		Content:   req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, sendMessage.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/messages - Invalid content: %v", err)
			handlers.RespondBadRequest(w, msgInvalidContent)

		case errors.Is(err, sendMessage.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/messages - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sendMessage.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/messages - Access denied: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /bookings/{id}/messages - Failed to send message: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/messages - Message sent: booking_id=%s, message_id=%s",
		bookingID, resp.Message.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
