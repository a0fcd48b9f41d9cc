package create_review

import (
	"time"

	"github.com/google/uuid"

	createReview "github.com/terapiemd/booking-service/internal/usecase/create_review"
)

// CreateReviewRequest HTTP request model
type CreateReviewRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewResponse is a stored review
type ReviewResponse struct {
	ID          uuid.UUID  `json:"id"`
	BookingID   uuid.UUID  `json:"bookingId"`
	TherapistID *uuid.UUID `json:"therapistId,omitempty"`
	BusinessID  *uuid.UUID `json:"businessId,omitempty"`
	Rating      int        `json:"rating"`
	Comment     *string    `json:"comment,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateReviewResponse HTTP response model
type CreateReviewResponse struct {
	Success bool            `json:"success"`
	Review  *ReviewResponse `json:"review"`
}

// FromUseCaseResponse converts the stored review to the HTTP response
func FromUseCaseResponse(resp *createReview.Response) *CreateReviewResponse {
	rv := resp.Review
	return &CreateReviewResponse{
		Success: true,
		Review: &ReviewResponse{
			ID:          rv.ID,
			BookingID:   rv.BookingID,
			TherapistID: rv.TherapistID,
			BusinessID:  rv.BusinessID,
			Rating:      rv.Rating,
			Comment:     rv.Comment,
			CreatedAt:   rv.CreatedAt,
		},
	}
}
