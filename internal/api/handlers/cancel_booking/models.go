package cancel_booking

// CancelBookingRequest HTTP request model; the body is optional
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=2000"`
}
