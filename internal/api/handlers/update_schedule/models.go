package update_schedule

import (
	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	WeeklySchedule map[string]models.DaySchedule `json:"weeklySchedule" validate:"max=7"`
	AvailableSlots []string                      `json:"availableSlots"`
}

// ToServiceRequest converts the HTTP request to the service model
func (r *UpdateScheduleRequest) ToServiceRequest(userID uuid.UUID, kind domain.ProviderKind, providerID uuid.UUID) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:         userID,
		Kind:           kind,
		ProviderID:     providerID,
		WeeklySchedule: r.WeeklySchedule,
		AvailableSlots: r.AvailableSlots,
	}
}
