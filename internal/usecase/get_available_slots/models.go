package get_available_slots

import (
	"time"

	"github.com/terapiemd/booking-service/internal/domain"
)

// Request asks for the free slots of one target on one date
type Request struct {
	Target domain.TargetRef
	Date   time.Time // UTC midnight
}

// Response lists free HH:MM slots in schedule order
type Response struct {
	Slots []string
}
