package send_message

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.SenderID == uuid.Nil {
		return fmt.Errorf("%w: sender is required", ErrInvalidInput)
	}

	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if len([]rune(req.Content)) > domain.MaxMessageLength {
		return fmt.Errorf("%w: content exceeds %d characters", ErrInvalidInput, domain.MaxMessageLength)
	}

	return nil
}
