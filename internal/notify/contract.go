package notify

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/integrations/eventbus"
	"github.com/terapiemd/booking-service/internal/integrations/resend"
)

// Dispatcher hands a notification off for best-effort delivery. It never reports failure to the caller.
type Dispatcher interface {
	Notify(ctx context.Context, n Notification)
}

// Deliverer sends one notification synchronously
type Deliverer interface {
	Deliver(ctx context.Context, n Notification) error
}

// ContactResolver looks up how to reach an account
type ContactResolver interface {
	GetContact(ctx context.Context, userID uuid.UUID) (*domain.Contact, error)
}

// PreferencesReader reads per-account notification switches
type PreferencesReader interface {
	GetNotificationPreferences(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreferences, error)
}

// EmailSender submits a rendered e-mail
type EmailSender interface {
	Send(ctx context.Context, email resend.Email) (string, error)
}

// Publisher enqueues a serialized notification
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// Consumer drains the notification queue
type Consumer interface {
	Consume(ctx context.Context, handle eventbus.Handler) error
}

// Recorder counts delivery outcomes
type Recorder interface {
	Notification(kind, result string)
}

// Logger interface
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
