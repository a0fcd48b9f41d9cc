package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// MessageRepository stores booking chat messages
type MessageRepository struct {
	s *Store
}

// Create appends a message to its booking thread
func (r *MessageRepository) Create(_ context.Context, msg *domain.Message) (*domain.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = r.s.now().UTC()
	msg.ReadAt = nil

	stored := *msg
	r.s.messages[msg.BookingID] = append(r.s.messages[msg.BookingID], &stored)
	return msg, nil
}

// ListByBooking returns a thread oldest first
func (r *MessageRepository) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]*domain.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	thread := r.s.messages[bookingID]
	result := make([]*domain.Message, 0, len(thread))
	for _, m := range thread {
		out := *m
		if m.ReadAt != nil {
			readAt := *m.ReadAt
			out.ReadAt = &readAt
		}
		result = append(result, &out)
	}
	return result, nil
}

// MarkRead stamps every message in the thread not sent by readerID
func (r *MessageRepository) MarkRead(_ context.Context, bookingID, readerID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now().UTC()
	var marked int64
	for _, m := range r.s.messages[bookingID] {
		if m.IsUnreadFor(readerID) {
			readAt := now
			m.ReadAt = &readAt
			marked++
		}
	}
	return marked, nil
}

// CountUnread returns per-booking counts of messages readerID has not read
func (r *MessageRepository) CountUnread(_ context.Context, bookingIDs []uuid.UUID, readerID uuid.UUID) (map[uuid.UUID]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[uuid.UUID]int)
	for _, id := range bookingIDs {
		for _, m := range r.s.messages[id] {
			if m.IsUnreadFor(readerID) {
				counts[id]++
			}
		}
	}
	return counts, nil
}
