package update_booking_status

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req.ActorID == uuid.Nil {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	// unconfirmed is a stored legacy value, never a requested one
	if !req.Status.IsValid() || req.Status == domain.StatusUnconfirmed {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if len([]rune(reason)) > domain.MaxReasonLength {
			return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
		}
		if reason == "" {
			req.Reason = nil
		} else {
			req.Reason = &reason
		}
	}

	return nil
}

// checkRole applies the per-role rules: clients may only cancel
func checkRole(role domain.Role, status domain.BookingStatus) error {
	switch {
	case role == domain.RoleNone:
		return fmt.Errorf("%w: not a party of the booking", ErrForbidden)
	case role == domain.RoleClient && status != domain.StatusCancelled:
		return fmt.Errorf("%w: clients may only cancel", ErrForbidden)
	}
	return nil
}
