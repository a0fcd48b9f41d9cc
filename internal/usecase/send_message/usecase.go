package send_message

import (
	"context"
	"errors"
	"fmt"

	"github.com/terapiemd/booking-service/internal/domain"
	bookingRepo "github.com/terapiemd/booking-service/internal/infra/storage/booking"
	"github.com/terapiemd/booking-service/internal/notify"
)

// UseCase posts messages on booking threads
type UseCase struct {
	bookingRepo BookingRepository
	messageRepo MessageRepository
	dispatcher  Dispatcher
	logger      Logger
}

// NewUseCase creates a new use case instance
func NewUseCase(bookingRepo BookingRepository, messageRepo MessageRepository, dispatcher Dispatcher, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		messageRepo: messageRepo,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Execute stores the message and tells the other party
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate request
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SendMessage: validation failed: %v", err)
		return nil, err
	}

	// 2. Load the booking and check the sender is a party
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("SendMessage: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("SendMessage: failed to load booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to load booking: %v", ErrInternal, err)
	}

	role := booking.RoleOf(req.SenderID)
	if role == domain.RoleNone {
		uc.logger.Warn("SendMessage: user=%s is not a party of booking id=%s", req.SenderID, req.BookingID)
		return nil, ErrForbidden
	}

	// 3. Store the message
	msg, err := uc.messageRepo.Create(ctx, &domain.Message{
		BookingID: booking.ID,
		SenderID:  req.SenderID,
		Content:   req.Content,
	})
	if err != nil {
		uc.logger.Error("SendMessage: failed to store message on booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to store message: %v", ErrInternal, err)
	}

	uc.logger.Info("SendMessage: message id=%s on booking id=%s by %s", msg.ID, booking.ID, role)

	// 4. Tell the other party
	uc.notify(ctx, booking, role, msg)

	return &Response{Message: msg}, nil
}

func (uc *UseCase) notify(ctx context.Context, b *domain.Booking, role domain.Role, msg *domain.Message) {
	recipient := b.CounterpartOf(msg.SenderID)
	if recipient == nil {
		uc.logger.Warn("SendMessage: booking id=%s has no provider account, nobody to notify", b.ID)
		return
	}

	target, _ := b.Target()
	n := notify.Notification{
		Kind:           notify.KindNewMessage,
		BookingID:      b.ID,
		RecipientID:    *recipient,
		CounterpartID:  msg.SenderID,
		ProviderID:     target.ProviderID,
		ProviderName:   b.ProviderName,
		Date:           b.Date.Format(domain.DateFormat),
		Time:           b.Time.String(),
		MessagePreview: domain.Preview(msg.Content),
	}

	// the provider side is addressed by its profile name
	if role == domain.RoleClient {
		n.RecipientName = b.ProviderName
	} else {
		n.CounterpartName = b.ProviderName
	}

	uc.dispatcher.Notify(ctx, n)
}
