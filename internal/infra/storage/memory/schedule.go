package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	scheduleRepo "github.com/terapiemd/booking-service/internal/infra/storage/schedule"
)

// ScheduleRepository serves provider profiles and offers
type ScheduleRepository struct {
	s *Store
}

// GetProvider returns a profile by id
func (r *ScheduleRepository) GetProvider(_ context.Context, kind domain.ProviderKind, id uuid.UUID) (*domain.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	profiles, ok := r.s.providers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: GetProvider - kind=%q", scheduleRepo.ErrInvalidKind, kind)
	}
	p, ok := profiles[id]
	if !ok {
		return nil, scheduleRepo.ErrProviderNotFound
	}
	return copyProvider(p), nil
}

// GetProviderByUserID returns the profile of kind owned by an account
func (r *ScheduleRepository) GetProviderByUserID(_ context.Context, kind domain.ProviderKind, userID uuid.UUID) (*domain.Provider, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	profiles, ok := r.s.providers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: GetProviderByUserID - kind=%q", scheduleRepo.ErrInvalidKind, kind)
	}
	for _, p := range profiles {
		if p.UserID == userID {
			return copyProvider(p), nil
		}
	}
	return nil, scheduleRepo.ErrProviderNotFound
}

// GetOffer returns an offer by id
func (r *ScheduleRepository) GetOffer(_ context.Context, id uuid.UUID) (*domain.Offer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.offers[id]
	if !ok {
		return nil, scheduleRepo.ErrOfferNotFound
	}
	out := *o
	if o.Availability != nil {
		out.Availability = make(domain.OfferAvailability, len(o.Availability))
		for day, slots := range o.Availability {
			out.Availability[day] = append([]string(nil), slots...)
		}
	}
	return &out, nil
}

// UpdateSchedule replaces the weekly schedule and default slots of a profile
func (r *ScheduleRepository) UpdateSchedule(
	_ context.Context,
	kind domain.ProviderKind,
	id uuid.UUID,
	weekly domain.WeeklySchedule,
	slots []string,
) (*domain.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	profiles, ok := r.s.providers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: UpdateSchedule - kind=%q", scheduleRepo.ErrInvalidKind, kind)
	}
	p, ok := profiles[id]
	if !ok {
		return nil, scheduleRepo.ErrProviderNotFound
	}

	p.WeeklySchedule = weekly
	if slots == nil {
		slots = []string{}
	}
	p.AvailableSlots = slots
	p.UpdatedAt = r.s.now().UTC()

	// detach stored state from caller-owned maps and slices
	stored := copyProvider(p)
	profiles[id] = stored
	return copyProvider(stored), nil
}
