// Package notify turns booking events into e-mails and decides how they are delivered:
// inline in a background goroutine, through the Redis queue, or not at all.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/integrations/resend"
)

// Config holds sender addresses and the public site URL used in links
type Config struct {
	BookingsFrom string
	MessagesFrom string
	AppURL       string
}

// Service renders and sends notification e-mails
type Service struct {
	contacts ContactResolver
	prefs    PreferencesReader
	sender   EmailSender
	cfg      Config
	log      Logger
}

// NewService creates a new notification service
func NewService(contacts ContactResolver, prefs PreferencesReader, sender EmailSender, cfg Config, log Logger) *Service {
	cfg.AppURL = strings.TrimRight(cfg.AppURL, "/")
	return &Service{
		contacts: contacts,
		prefs:    prefs,
		sender:   sender,
		cfg:      cfg,
		log:      log,
	}
}

// Deliver sends one notification. ErrOptedOut and ErrNoRecipientEmail mean nothing was sent on purpose.
func (s *Service) Deliver(ctx context.Context, n Notification) error {
	if !n.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
	}

	recipient, err := s.contacts.GetContact(ctx, n.RecipientID)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrResolveContact, n.RecipientID, err)
	}
	if strings.TrimSpace(recipient.Email) == "" {
		return ErrNoRecipientEmail
	}

	if n.Kind == KindNewMessage {
		prefs, err := s.prefs.GetNotificationPreferences(ctx, n.RecipientID)
		if err != nil {
			// unknown preferences fall back to the default, which allows e-mail
			s.log.Warn("notify: preferences of %s unavailable: %v", n.RecipientID, err)
		} else if !prefs.AllowsBookingEmail() {
			return ErrOptedOut
		}
	}

	data := emailData{
		RecipientName:   s.recipientName(n, recipient),
		CounterpartName: s.counterpartName(ctx, n),
		ProviderName:    firstNonEmpty(n.ProviderName, domain.DefaultProviderName),
		Status:          string(n.Status),
		Date:            n.Date,
		Time:            n.Time,
		Notes:           n.Notes,
		Reason:          n.Reason,
		Preview:         n.MessagePreview,
		Link:            s.link(n),
	}

	subject, title, tone, err := subjectAndTone(n, data.CounterpartName)
	if err != nil {
		return err
	}
	data.Title = title
	data.Tone = tone

	html, err := render(n.Kind, data)
	if err != nil {
		return err
	}

	from := s.cfg.BookingsFrom
	if n.Kind == KindNewMessage && s.cfg.MessagesFrom != "" {
		from = s.cfg.MessagesFrom
	}

	id, err := s.sender.Send(ctx, resend.Email{
		From:    from,
		To:      []string{recipient.Email},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("%w: %s for booking %s: %v", ErrSend, n.Kind, n.BookingID, err)
	}

	s.log.Debug("notify: %s for booking %s sent as %s", n.Kind, n.BookingID, id)
	return nil
}

func (s *Service) recipientName(n Notification, recipient *domain.Contact) string {
	switch n.Kind {
	case KindBookingRequest, KindBookingCancellation:
		// provider-bound mail greets the profile, not the account
		return firstNonEmpty(n.RecipientName, n.ProviderName, recipient.Name, domain.DefaultProviderName)
	case KindBookingStatusChange:
		return firstNonEmpty(n.RecipientName, recipient.Name, domain.DefaultClientName)
	default:
		return firstNonEmpty(n.RecipientName, recipient.Name, domain.DefaultParticipantName)
	}
}

func (s *Service) counterpartName(ctx context.Context, n Notification) string {
	fallback := domain.DefaultParticipantName
	switch n.Kind {
	case KindBookingRequest, KindBookingCancellation:
		fallback = domain.DefaultClientName
	case KindBookingStatusChange:
		fallback = firstNonEmpty(n.ProviderName, domain.DefaultProviderName)
	}

	if n.CounterpartName != "" {
		return n.CounterpartName
	}
	if n.CounterpartID == uuid.Nil {
		return fallback
	}

	contact, err := s.contacts.GetContact(ctx, n.CounterpartID)
	if err != nil {
		s.log.Warn("notify: counterpart %s unavailable: %v", n.CounterpartID, err)
		return fallback
	}
	return firstNonEmpty(contact.Name, contact.Email, fallback)
}

func (s *Service) link(n Notification) string {
	if n.Link != "" {
		return n.Link
	}
	switch {
	case n.Kind == KindBookingStatusChange && n.Status == domain.StatusCompleted && n.ProviderID != uuid.Nil:
		return s.cfg.AppURL + "/terapeuti/" + n.ProviderID.String()
	case n.Kind == KindBookingRequest, n.Kind == KindNewMessage:
		return s.cfg.AppURL + "/dashboard"
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
