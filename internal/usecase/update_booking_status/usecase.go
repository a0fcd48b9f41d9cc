package update_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	bookingRepo "github.com/terapiemd/booking-service/internal/infra/storage/booking"
	"github.com/terapiemd/booking-service/internal/notify"
	"github.com/terapiemd/booking-service/pkg/ptr"
)

// UseCase moves bookings through their status graph
type UseCase struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	dispatcher  Dispatcher
	metrics     Metrics
	logger      Logger
}

// NewUseCase creates a new use case instance
func NewUseCase(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	dispatcher Dispatcher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		dispatcher:  dispatcher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Cancel is Execute with the cancelled status
func (uc *UseCase) Cancel(ctx context.Context, actorID, bookingID uuid.UUID, reason *string) (*Response, error) {
	return uc.Execute(ctx, &Request{
		ActorID:   actorID,
		BookingID: bookingID,
		Status:    domain.StatusCancelled,
		Reason:    reason,
	})
}

// Execute applies a status change. The booking row is locked for the duration of the check
// so two concurrent moves cannot both pass the transition table.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate request
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateBookingStatus: booking=%s, status=%s, actor=%s", req.BookingID, req.Status, req.ActorID)

	var resp *Response
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Lock the booking
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to load booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
		}

		// 3. Check actor role and transition
		role := booking.RoleOf(req.ActorID)
		if err := checkRole(role, req.Status); err != nil {
			return err
		}

		if !booking.Status.CanTransitionTo(req.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, req.Status)
		}

		// 4. Persist status and reason
		notes := booking.Notes
		if req.Reason != nil {
			notes = domain.AppendReason(notes, role, *req.Reason)
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, req.Status, notes); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBookingStatus: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		previous := booking.Status
		booking.Status = req.Status
		booking.Notes = notes
		resp = &Response{Booking: booking, Previous: previous, Role: role}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			uc.logger.Warn("UpdateBookingStatus: booking id=%s not found", req.BookingID)
		case errors.Is(err, ErrForbidden), errors.Is(err, ErrInvalidTransition):
			uc.logger.Warn("UpdateBookingStatus: booking id=%s rejected: %v", req.BookingID, err)
		case errors.Is(err, ErrInternal):
		default:
			uc.logger.Error("UpdateBookingStatus: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	// 5. Record and notify the counterpart
	uc.metrics.StatusTransition(string(resp.Previous), string(req.Status))
	uc.logger.Info("UpdateBookingStatus: booking id=%s %s -> %s by %s",
		req.BookingID, resp.Previous, req.Status, resp.Role)

	uc.notify(ctx, resp, ptr.Value(req.Reason))

	return resp, nil
}

// notify tells the other party: the provider learns about client cancellations,
// the client learns about every provider decision
func (uc *UseCase) notify(ctx context.Context, resp *Response, reason string) {
	b := resp.Booking
	target, _ := b.Target()

	n := notify.Notification{
		BookingID:    b.ID,
		ProviderID:   target.ProviderID,
		ProviderName: b.ProviderName,
		Date:         b.Date.Format(domain.DateFormat),
		Time:         b.Time.String(),
		Status:       b.Status,
		Reason:       reason,
	}

	if resp.Role == domain.RoleClient {
		recipient := b.ProviderUserID()
		if recipient == nil {
			uc.logger.Warn("UpdateBookingStatus: booking id=%s has no provider account, provider not notified", b.ID)
			return
		}
		n.Kind = notify.KindBookingCancellation
		n.RecipientID = *recipient
		n.CounterpartID = b.ClientID
	} else {
		n.Kind = notify.KindBookingStatusChange
		n.RecipientID = b.ClientID
		if owner := b.ProviderUserID(); owner != nil {
			n.CounterpartID = *owner
		}
	}

	uc.dispatcher.Notify(ctx, n)
}
