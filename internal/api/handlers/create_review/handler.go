package create_review

import (
	"errors"
	"net/http"

	"github.com/terapiemd/booking-service/internal/api/handlers"
	"github.com/terapiemd/booking-service/internal/api/middleware"
	createReview "github.com/terapiemd/booking-service/internal/usecase/create_review"
)

const (
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidRequestBody = "invalid request body, rating must be between 1 and 5"
	msgMissingUserID      = "authentication required"
	msgInvalidInput       = "rating must be between 1 and 5 and comment at most 2000 characters"
	msgNotFound           = "booking not found or access denied"
	msgNotCompleted       = "booking must be completed to leave a review"
	msgAlreadyReviewed    = "you have already reviewed this provider"
)

type Handler struct {
	useCase CreateReviewUseCase
	logger  Logger
}

func NewHandler(useCase CreateReviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/review - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/review - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &createReview.Request{
		ClientID:  userID,
		BookingID: bookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, createReview.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/review - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReview.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/review - Booking not found: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createReview.ErrNotCompleted):
			h.logger.Warn("POST /bookings/{id}/review - Booking not completed: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgNotCompleted)

		case errors.Is(err, createReview.ErrAlreadyReviewed):
			h.logger.Warn("POST /bookings/{id}/review - Already reviewed: booking_id=%s, user_id=%s", bookingID, userID)
			handlers.RespondBadRequest(w, msgAlreadyReviewed)

		default:
			h.logger.Error("POST /bookings/{id}/review - Failed to create review: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/review - Review created: booking_id=%s, review_id=%s", bookingID, resp.Review.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
