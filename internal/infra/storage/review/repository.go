package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/pkg/dbmetrics"
	"github.com/terapiemd/booking-service/pkg/psqlbuilder"
)

const codeUniqueViolation = "23505"

// Repository stores provider reviews
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a review repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a review. A second review of the same provider by the same client yields ErrAlreadyReviewed.
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("id", "booking_id", "client_id", "therapist_id", "business_id", "rating", "comment").
		Values(
			review.ID,
			review.BookingID,
			review.ClientID,
			nullUUID(review.TherapistID),
			nullUUID(review.BusinessID),
			review.Rating,
			review.Comment,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&review.CreatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return review, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
