package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/terapiemd/booking-service/internal/domain"
	bookingRepo "github.com/terapiemd/booking-service/internal/infra/storage/booking"
	"github.com/terapiemd/booking-service/internal/notify"
	"github.com/terapiemd/booking-service/internal/usecase/get_available_slots"
	"github.com/terapiemd/booking-service/pkg/ptr"
)

// UseCase creates reservations
type UseCase struct {
	bookingRepo  BookingRepository
	resolver     SlotResolver
	txManager    TransactionManager
	dispatcher   Dispatcher
	metrics      Metrics
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new use case instance
func NewUseCase(
	bookingRepo BookingRepository,
	resolver SlotResolver,
	txManager TransactionManager,
	dispatcher Dispatcher,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		txManager:    txManager,
		dispatcher:   dispatcher,
		metrics:      metrics,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider replaces the clock
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute inserts a pending booking. The claim check and the insert share one serializable
// transaction and the ledger's unique index backs them, so one slot never gets two live bookings.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate request
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: client=%s, date=%s, time=%s",
		req.ClientID, req.Date.Format(domain.DateFormat), req.Time)

	if uc.opts.RejectPastDates && isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Resolve the booked profile
	resolved, err := uc.resolver.ResolveTarget(ctx, req.Target)
	if err != nil {
		return nil, mapResolveError(err)
	}
	target := resolved.Target

	if uc.opts.EnforceSchedule {
		base := uc.resolver.ResolveBaseSlots(resolved, req.Date)
		if !containsSlot(base, req.Time.String()) {
			uc.logger.Warn("CreateBooking: %s is not offered by %s %s on %s",
				req.Time, target.Kind, target.ProviderID, req.Date.Format(domain.DateFormat))
			return nil, ErrSlotNotOffered
		}
	}

	// 3. Build the booking
	booking := &domain.Booking{
		ClientID: req.ClientID,
		OfferID:  req.Target.OfferID,
		Date:     req.Date,
		Time:     req.Time,
		Status:   domain.StatusPending,
		Notes:    req.Notes,
	}
	switch target.Kind {
	case domain.ProviderKindTherapist:
		booking.TherapistID = ptr.Ptr(target.ProviderID)
	case domain.ProviderKindBusiness:
		booking.BusinessID = ptr.Ptr(target.ProviderID)
	}

	// 4. Claim the slot and insert in one serializable transaction
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		claimed, err := uc.bookingRepo.IsSlotClaimed(txCtx, target, req.Date, req.Time)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %w", ErrInternal, err)
		}
		if claimed {
			return ErrSlotAlreadyTaken
		}

		// the insert works on a copy so a retried attempt starts clean
		attempt := *booking
		result, err := uc.bookingRepo.Create(txCtx, &attempt)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyTaken) {
				return ErrSlotAlreadyTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		created = result
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotAlreadyTaken) {
			uc.metrics.SlotConflict()
			uc.logger.Warn("CreateBooking: slot %s %s taken for %s %s",
				req.Date.Format(domain.DateFormat), req.Time, target.Kind, target.ProviderID)
			return nil, ErrSlotAlreadyTaken
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	// 5. Read back with provider name and owning account, then notify the provider
	stored, err := uc.bookingRepo.GetByID(ctx, created.ID)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to reload booking id=%s, provider not notified: %v", created.ID, err)
		return &Response{Booking: created}, nil
	}

	uc.notifyProvider(ctx, stored)

	return &Response{Booking: stored}, nil
}

func (uc *UseCase) notifyProvider(ctx context.Context, b *domain.Booking) {
	recipient := b.ProviderUserID()
	if recipient == nil {
		uc.logger.Warn("CreateBooking: booking id=%s has no provider account, provider not notified", b.ID)
		return
	}

	target, _ := b.Target()
	uc.dispatcher.Notify(ctx, notify.Notification{
		Kind:          notify.KindBookingRequest,
		BookingID:     b.ID,
		RecipientID:   *recipient,
		CounterpartID: b.ClientID,
		ProviderID:    target.ProviderID,
		ProviderName:  b.ProviderName,
		Date:          b.Date.Format(domain.DateFormat),
		Time:          b.Time.String(),
		Notes:         ptr.Value(b.Notes),
	})
}

func mapResolveError(err error) error {
	switch {
	case errors.Is(err, get_available_slots.ErrProviderNotFound):
		return ErrProviderNotFound
	case errors.Is(err, get_available_slots.ErrOfferNotFound):
		return ErrOfferNotFound
	case errors.Is(err, get_available_slots.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: failed to resolve target: %v", ErrInternal, err)
	}
}
