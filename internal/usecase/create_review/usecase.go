package create_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/terapiemd/booking-service/internal/domain"
	bookingRepo "github.com/terapiemd/booking-service/internal/infra/storage/booking"
	reviewRepo "github.com/terapiemd/booking-service/internal/infra/storage/review"
)

// UseCase lets a client review the provider of a completed booking
type UseCase struct {
	bookingRepo BookingRepository
	reviewRepo  ReviewRepository
	logger      Logger
}

// NewUseCase creates a new use case instance
func NewUseCase(bookingRepo BookingRepository, reviewRepo ReviewRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		reviewRepo:  reviewRepo,
		logger:      logger,
	}
}

// Execute stores the review
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate request
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReview: validation failed: %v", err)
		return nil, err
	}

	// 2. Load the booking, hiding other clients' bookings
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CreateReview: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CreateReview: failed to load booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
	}

	if booking.ClientID != req.ClientID {
		uc.logger.Warn("CreateReview: user=%s is not the client of booking id=%s", req.ClientID, booking.ID)
		return nil, ErrBookingNotFound
	}

	// 3. Only completed visits can be reviewed
	if booking.Status != domain.StatusCompleted {
		uc.logger.Warn("CreateReview: booking id=%s is %s, not completed", booking.ID, booking.Status)
		return nil, ErrNotCompleted
	}

	// 4. Store the review against the booked profile
	review, err := uc.reviewRepo.Create(ctx, &domain.Review{
		BookingID:   booking.ID,
		ClientID:    req.ClientID,
		TherapistID: booking.TherapistID,
		BusinessID:  booking.BusinessID,
		Rating:      req.Rating,
		Comment:     req.Comment,
	})
	if err != nil {
		if errors.Is(err, reviewRepo.ErrAlreadyReviewed) {
			uc.logger.Warn("CreateReview: user=%s already reviewed the provider of booking id=%s", req.ClientID, booking.ID)
			return nil, ErrAlreadyReviewed
		}
		uc.logger.Error("CreateReview: failed to store review for booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to store review: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateReview: review id=%s rating=%d for booking id=%s", review.ID, review.Rating, booking.ID)

	return &Response{Review: review}, nil
}
