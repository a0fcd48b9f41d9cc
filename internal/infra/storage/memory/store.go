// Package memory is an in-process implementation of the storage repositories.
// It backs the "memory" storage driver and the usecase tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// Store holds every entity behind a single RWMutex
type Store struct {
	mu sync.RWMutex

	providers map[domain.ProviderKind]map[uuid.UUID]*domain.Provider
	offers    map[uuid.UUID]*domain.Offer
	bookings  map[uuid.UUID]*domain.Booking
	order     []uuid.UUID // booking insertion order
	messages  map[uuid.UUID][]*domain.Message
	users     map[uuid.UUID]*User
	reviews   []*domain.Review

	now func() time.Time
}

// User is a seeded account
type User struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	Preferences domain.NotificationPreferences
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		providers: map[domain.ProviderKind]map[uuid.UUID]*domain.Provider{
			domain.ProviderKindTherapist: {},
			domain.ProviderKindBusiness:  {},
		},
		offers:   make(map[uuid.UUID]*domain.Offer),
		bookings: make(map[uuid.UUID]*domain.Booking),
		messages: make(map[uuid.UUID][]*domain.Message),
		users:    make(map[uuid.UUID]*User),
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddProvider seeds a therapist or business profile
func (s *Store) AddProvider(p domain.Provider) *domain.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.UserID == uuid.Nil {
		p.UserID = uuid.New()
	}
	stored := p
	s.providers[p.Kind][p.ID] = &stored
	return copyProvider(&stored)
}

// AddOffer seeds an offer
func (s *Store) AddOffer(o domain.Offer) *domain.Offer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	stored := o
	s.offers[o.ID] = &stored
	out := stored
	return &out
}

// AddUser seeds an account
func (s *Store) AddUser(u User) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	stored := u
	s.users[u.ID] = &stored
	out := stored
	return &out
}

// Bookings returns the booking ledger view
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

// Schedules returns the provider schedule view
func (s *Store) Schedules() *ScheduleRepository {
	return &ScheduleRepository{s: s}
}

// Messages returns the booking chat view
func (s *Store) Messages() *MessageRepository {
	return &MessageRepository{s: s}
}

// Users returns the account view
func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

// Reviews returns the provider review view
func (s *Store) Reviews() *ReviewRepository {
	return &ReviewRepository{s: s}
}

func copyProvider(p *domain.Provider) *domain.Provider {
	out := *p
	if p.WeeklySchedule != nil {
		out.WeeklySchedule = make(domain.WeeklySchedule, len(p.WeeklySchedule))
		for day, sched := range p.WeeklySchedule {
			sched.Slots = append([]string(nil), sched.Slots...)
			out.WeeklySchedule[day] = sched
		}
	}
	out.AvailableSlots = append([]string(nil), p.AvailableSlots...)
	return &out
}
