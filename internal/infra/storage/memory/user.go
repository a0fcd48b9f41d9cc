package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	userRepo "github.com/terapiemd/booking-service/internal/infra/storage/user"
)

// UserRepository reads account settings
type UserRepository struct {
	s *Store
}

// GetNotificationPreferences returns the notification switches of an account
func (r *UserRepository) GetNotificationPreferences(_ context.Context, userID uuid.UUID) (*domain.NotificationPreferences, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	prefs := u.Preferences
	return &prefs, nil
}
