package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	bookingRepo "github.com/terapiemd/booking-service/internal/infra/storage/booking"
	"github.com/terapiemd/booking-service/pkg/types"
)

// BookingRepository is the in-memory reservation ledger.
// It returns the same sentinel errors as the postgres ledger.
type BookingRepository struct {
	s *Store
}

// Create inserts a booking, rejecting a second non-cancelled claim on the same slot
func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	target, ok := booking.Target()
	if !ok {
		return nil, fmt.Errorf("%w: booking has neither therapist nor business", bookingRepo.ErrInvalidTarget)
	}

	if booking.Status.ClaimsSlot() && r.s.claimedLocked(target, booking.Date, booking.Time, uuid.Nil) {
		return nil, bookingRepo.ErrSlotAlreadyTaken
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	now := r.s.now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	stored := *booking
	r.s.bookings[stored.ID] = &stored
	r.s.order = append(r.s.order, stored.ID)

	return booking, nil
}

// GetByID returns a booking with its read-side party data
func (r *BookingRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.s.hydrateLocked(b), nil
}

// GetByIDForUpdate is GetByID; transactions are serialized by TxManager
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

// ListClaimedTimes returns the HH:MM times of every non-cancelled booking of target on date
func (r *BookingRepository) ListClaimedTimes(_ context.Context, target domain.Target, date time.Time) (map[string]struct{}, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	claimed := make(map[string]struct{})
	for _, b := range r.s.bookings {
		t, ok := b.Target()
		if !ok || t != target || !sameDate(b.Date, date) || !b.Status.ClaimsSlot() {
			continue
		}
		claimed[types.Normalize(b.Time.String())] = struct{}{}
	}
	return claimed, nil
}

// IsSlotClaimed reports whether a non-cancelled booking holds the slot
func (r *BookingRepository) IsSlotClaimed(_ context.Context, target domain.Target, date time.Time, at types.TimeString) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.claimedLocked(target, date, at, uuid.Nil), nil
}

// UpdateStatus sets status and notes of a booking
func (r *BookingRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.BookingStatus, notes *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}

	// reviving a cancelled booking must not double-claim its slot
	if !b.Status.ClaimsSlot() && status.ClaimsSlot() {
		if target, ok := b.Target(); ok && r.s.claimedLocked(target, b.Date, b.Time, b.ID) {
			return bookingRepo.ErrSlotAlreadyTaken
		}
	}

	b.Status = status
	if notes != nil {
		n := *notes
		b.Notes = &n
	} else {
		b.Notes = nil
	}
	b.UpdatedAt = r.s.now().UTC()
	return nil
}

// ListByClient returns a client's bookings, newest appointment first
func (r *BookingRepository) ListByClient(_ context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for _, id := range r.s.order {
		b := r.s.bookings[id]
		if b.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, r.s.hydrateLocked(b))
	}

	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].Time.IsAfter(result[j].Time)
	})
	return result, nil
}

// ListByProvider returns a profile's bookings with client contact data, most recent first
func (r *BookingRepository) ListByProvider(_ context.Context, target domain.Target) ([]*domain.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make([]*domain.Booking, 0)
	for i := len(r.s.order) - 1; i >= 0; i-- {
		b := r.s.bookings[r.s.order[i]]
		if t, ok := b.Target(); !ok || t != target {
			continue
		}

		out := r.s.hydrateLocked(b)
		client := &domain.ClientProfile{}
		if u, ok := r.s.users[b.ClientID]; ok {
			client.Name = u.Name
			if u.Email != "" {
				email := u.Email
				client.Email = &email
			}
			if u.Phone != "" {
				phone := u.Phone
				client.Phone = &phone
			}
		}
		out.Client = client
		result = append(result, out)
	}
	return result, nil
}

// claimedLocked must be called with s.mu held. except skips one booking id.
func (s *Store) claimedLocked(target domain.Target, date time.Time, at types.TimeString, except uuid.UUID) bool {
	want := types.Normalize(at.String())
	for _, b := range s.bookings {
		if b.ID == except || !b.Status.ClaimsSlot() || !sameDate(b.Date, date) {
			continue
		}
		if t, ok := b.Target(); ok && t == target && types.Normalize(b.Time.String()) == want {
			return true
		}
	}
	return false
}

// hydrateLocked copies b and fills the owning accounts and provider name
func (s *Store) hydrateLocked(b *domain.Booking) *domain.Booking {
	out := *b
	if b.Notes != nil {
		n := *b.Notes
		out.Notes = &n
	}
	if b.TherapistID != nil {
		if p, ok := s.providers[domain.ProviderKindTherapist][*b.TherapistID]; ok {
			uid := p.UserID
			out.TherapistUserID = &uid
			out.ProviderName = p.Name
		}
	}
	if b.BusinessID != nil {
		if p, ok := s.providers[domain.ProviderKindBusiness][*b.BusinessID]; ok {
			uid := p.UserID
			out.BusinessUserID = &uid
			if out.ProviderName == "" {
				out.ProviderName = p.Name
			}
		}
	}
	return &out
}

func sameDate(a, b time.Time) bool {
	return a.UTC().Format(domain.DateFormat) == b.UTC().Format(domain.DateFormat)
}
