package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// DaySchedule is one weekday of a schedule
type DaySchedule struct {
	Active bool     `json:"active"`
	Slots  []string `json:"slots"`
}

// UpdateScheduleRequest replaces a profile's schedule
type UpdateScheduleRequest struct {
	UserID         uuid.UUID
	Kind           domain.ProviderKind
	ProviderID     uuid.UUID
	WeeklySchedule map[string]DaySchedule
	AvailableSlots []string
}

// ScheduleResponse is a provider's schedule as returned by the API
type ScheduleResponse struct {
	ProviderID     uuid.UUID              `json:"providerId"`
	Kind           string                 `json:"kind"`
	Name           string                 `json:"name"`
	WeeklySchedule map[string]DaySchedule `json:"weeklySchedule"`
	AvailableSlots []string               `json:"availableSlots"`
	UpdatedAt      *time.Time             `json:"updatedAt,omitempty"`
}

// FromDomainProvider converts a profile to its schedule DTO
func FromDomainProvider(p *domain.Provider) *ScheduleResponse {
	resp := &ScheduleResponse{
		ProviderID:     p.ID,
		Kind:           string(p.Kind),
		Name:           p.Name,
		WeeklySchedule: make(map[string]DaySchedule, len(p.WeeklySchedule)),
		AvailableSlots: append([]string{}, p.AvailableSlots...),
	}

	for day, s := range p.WeeklySchedule {
		resp.WeeklySchedule[day] = DaySchedule{Active: s.Active, Slots: append([]string{}, s.Slots...)}
	}

	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}

	return resp
}
