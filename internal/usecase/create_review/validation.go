package create_review

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: client is required", ErrInvalidInput)
	}

	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if req.Comment != nil {
		comment := strings.TrimSpace(*req.Comment)
		if comment == "" {
			req.Comment = nil
			return nil
		}
		if len([]rune(comment)) > domain.MaxReviewCommentLength {
			return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxReviewCommentLength)
		}
		req.Comment = &comment
	}

	return nil
}
