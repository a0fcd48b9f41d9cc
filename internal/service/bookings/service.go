package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	bookingRepo "github.com/terapiemd/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/terapiemd/booking-service/internal/infra/storage/schedule"
	"github.com/terapiemd/booking-service/internal/service/bookings/models"
)

// Service is the read side of bookings and their message threads
type Service struct {
	bookingRepo  BookingRepository
	providerRepo ProviderRepository
	messageRepo  MessageRepository
	logger       Logger
}

// NewService creates a new bookings service
func NewService(
	bookingRepo BookingRepository,
	providerRepo ProviderRepository,
	messageRepo MessageRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		providerRepo: providerRepo,
		messageRepo:  messageRepo,
		logger:       logger,
	}
}

// GetByID returns a booking to its client or to the owner of the booked profile
func (s *Service) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.loadForParty(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings returns the caller's bookings as a client, optionally filtered by status
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	filter := domain.ClientBookingsFilter{ClientID: req.UserID}
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.ListByClient(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for user=%s", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetProviderBookings returns the bookings of the caller's therapist profile, or of their
// business when they have no therapist profile. Client contact details stay hidden until
// the booking is confirmed.
func (s *Service) GetProviderBookings(ctx context.Context, userID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("GetProviderBookings: fetching bookings for user=%s", userID)

	provider, err := s.ownedProvider(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByProvider(ctx, domain.Target{Kind: provider.Kind, ProviderID: provider.ID})
	if err != nil {
		s.logger.Error("GetProviderBookings: repository error for %s %s: %v", provider.Kind, provider.ID, err)
		return nil, fmt.Errorf("%w: GetProviderBookings - repository error: %v", ErrInternal, err)
	}

	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
		if b.Status.IsPending() && b.Client != nil {
			b.Client = b.Client.Mask()
		}
	}

	unread, err := s.messageRepo.CountUnread(ctx, ids, userID)
	if err != nil {
		// the list is still useful without badges
		s.logger.Warn("GetProviderBookings: failed to count unread messages for user=%s: %v", userID, err)
		unread = nil
	}

	resp := models.FromDomainBookingList(bookings)
	for i := range resp.Bookings {
		count := unread[resp.Bookings[i].ID]
		resp.Bookings[i].UnreadCount = &count
	}

	s.logger.Info("GetProviderBookings: successfully fetched %d bookings for %s %s",
		len(bookings), provider.Kind, provider.ID)
	return resp, nil
}

// ListMessages returns a booking thread and marks the counterpart's messages as read
func (s *Service) ListMessages(ctx context.Context, bookingID, userID uuid.UUID) (*models.MessageListResponse, error) {
	s.logger.Info("ListMessages: fetching thread of booking id=%s for user=%s", bookingID, userID)

	if _, err := s.loadForParty(ctx, "ListMessages", bookingID, userID); err != nil {
		return nil, err
	}

	marked, err := s.messageRepo.MarkRead(ctx, bookingID, userID)
	if err != nil {
		s.logger.Warn("ListMessages: failed to mark thread of booking id=%s read: %v", bookingID, err)
	}

	messages, err := s.messageRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListMessages: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListMessages - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMessages: %d messages on booking id=%s, %d marked read", len(messages), bookingID, marked)
	return models.FromDomainMessages(messages), nil
}

// loadForParty fetches a booking and checks that userID takes part in it
func (s *Service) loadForParty(ctx context.Context, op string, id, userID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.RoleOf(userID) == domain.RoleNone {
		s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, userID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// ownedProvider finds the caller's profile, therapist first
func (s *Service) ownedProvider(ctx context.Context, userID uuid.UUID) (*domain.Provider, error) {
	for _, kind := range []domain.ProviderKind{domain.ProviderKindTherapist, domain.ProviderKindBusiness} {
		provider, err := s.providerRepo.GetProviderByUserID(ctx, kind, userID)
		if err == nil {
			return provider, nil
		}
		if !errors.Is(err, scheduleRepo.ErrProviderNotFound) {
			s.logger.Error("ownedProvider: repository error for user=%s: %v", userID, err)
			return nil, fmt.Errorf("%w: ownedProvider - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Warn("ownedProvider: user=%s owns no provider profile", userID)
	return nil, ErrProviderNotFound
}
