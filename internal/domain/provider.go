package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProviderKind distinguishes independent therapists from wellness businesses
type ProviderKind string

const (
	ProviderKindTherapist ProviderKind = "therapist"
	ProviderKindBusiness  ProviderKind = "business"
)

// IsValid reports whether k is a known provider kind
func (k ProviderKind) IsValid() bool {
	return k == ProviderKindTherapist || k == ProviderKindBusiness
}

// Provider is a bookable therapist or business profile
type Provider struct {
	ID             uuid.UUID
	UserID         uuid.UUID // account owning the profile
	Kind           ProviderKind
	Name           string
	WeeklySchedule WeeklySchedule
	AvailableSlots []string // default slots for days without a weekly entry
	UpdatedAt      time.Time
}

// DaySchedule is one weekday entry of a weekly schedule
type DaySchedule struct {
	Active bool     `json:"active"`
	Slots  []string `json:"slots"`
}

// WeeklySchedule maps lowercase English weekday names to their schedule.
// Stored as JSONB.
type WeeklySchedule map[string]DaySchedule

// Scan implements sql.Scanner. A day stored as JSON null counts as missing.
func (w *WeeklySchedule) Scan(src interface{}) error {
	var raw map[string]*DaySchedule
	if err := scanJSON(src, &raw); err != nil {
		return err
	}
	if raw == nil {
		*w = nil
		return nil
	}

	out := make(WeeklySchedule, len(raw))
	for day, entry := range raw {
		if entry == nil {
			continue
		}
		out[day] = *entry
	}
	*w = out
	return nil
}

// Value implements driver.Valuer
func (w WeeklySchedule) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

// Offer is a bookable service instance owned by a therapist or a business
type Offer struct {
	ID           uuid.UUID
	ProviderID   *uuid.UUID // owning therapist profile
	BusinessID   *uuid.UUID // owning business profile
	Title        string
	Availability OfferAvailability
}

// Owner returns the profile the offer's reservations are booked against.
// A therapist owner takes precedence over a business owner.
func (o *Offer) Owner() (Target, bool) {
	if o.ProviderID != nil {
		return Target{Kind: ProviderKindTherapist, ProviderID: *o.ProviderID}, true
	}
	if o.BusinessID != nil {
		return Target{Kind: ProviderKindBusiness, ProviderID: *o.BusinessID}, true
	}
	return Target{}, false
}

// OfferAvailability maps weekday names to slots. Presence of a day means it is bookable.
type OfferAvailability map[string][]string

// Scan implements sql.Scanner. A day stored as JSON null counts as missing.
func (a *OfferAvailability) Scan(src interface{}) error {
	var raw map[string]*[]string
	if err := scanJSON(src, &raw); err != nil {
		return err
	}
	if raw == nil {
		*a = nil
		return nil
	}

	out := make(OfferAvailability, len(raw))
	for day, slots := range raw {
		if slots == nil {
			continue
		}
		out[day] = *slots
	}
	*a = out
	return nil
}

// Value implements driver.Valuer
func (a OfferAvailability) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// DayName returns the lowercase English weekday of date, always computed in UTC
func DayName(date time.Time) string {
	return weekdayNames[date.UTC().Weekday()]
}

// IsDayName reports whether s is one of the weekday keys used by schedules
func IsDayName(s string) bool {
	for _, name := range weekdayNames {
		if name == s {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, strings.TrimSpace(s), time.UTC)
}

var errUnsupportedJSONSource = errors.New("domain: unsupported source type for JSON column")

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedJSONSource, src)
	}
}
