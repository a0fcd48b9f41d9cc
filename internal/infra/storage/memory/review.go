package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	reviewRepo "github.com/terapiemd/booking-service/internal/infra/storage/review"
)

// ReviewRepository stores provider reviews
type ReviewRepository struct {
	s *Store
}

// Create stores a review unless the client already reviewed the same provider
func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	target, _ := review.Target()
	for _, existing := range r.s.reviews {
		if t, _ := existing.Target(); existing.ClientID == review.ClientID && t == target {
			return nil, reviewRepo.ErrAlreadyReviewed
		}
	}

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = r.s.now().UTC()

	stored := *review
	r.s.reviews = append(r.s.reviews, &stored)
	return review, nil
}
