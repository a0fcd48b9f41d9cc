package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is a chat entry attached to a booking
type Message struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	SenderID  uuid.UUID
	Content   string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// IsUnreadFor reports whether the message is still unread by reader
func (m *Message) IsUnreadFor(reader uuid.UUID) bool {
	return m.ReadAt == nil && m.SenderID != reader
}

// Preview shortens content for notifications
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= MessagePreviewLength {
		return content
	}
	return string(runes[:MessagePreviewLength]) + "..."
}

// ClientProfile is the client data shown to a provider
type ClientProfile struct {
	Name   string
	Email  *string
	Phone  *string
	Masked bool
}

// Mask hides contact details
func (c *ClientProfile) Mask() *ClientProfile {
	return &ClientProfile{Name: c.Name, Masked: true}
}

// Contact is what notifications need to reach an account
type Contact struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// NotificationPreferences are per-account notification switches. Stored as JSONB.
type NotificationPreferences struct {
	EmailBooking *bool `json:"email_booking,omitempty"`
}

// AllowsBookingEmail defaults to true when the preference is unset
func (p *NotificationPreferences) AllowsBookingEmail() bool {
	if p == nil || p.EmailBooking == nil {
		return true
	}
	return *p.EmailBooking
}

// Scan implements sql.Scanner
func (p *NotificationPreferences) Scan(src interface{}) error {
	return scanJSON(src, p)
}

// Value implements driver.Valuer
func (p NotificationPreferences) Value() (driver.Value, error) {
	return json.Marshal(p)
}
