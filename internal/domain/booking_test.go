package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terapiemd/booking-service/pkg/ptr"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusUnconfirmed, StatusConfirmed, true},
		{StatusUnconfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_Flags(t *testing.T) {
	assert.True(t, StatusUnconfirmed.IsPending())
	assert.True(t, StatusPending.ClaimsSlot())
	assert.True(t, StatusCompleted.ClaimsSlot())
	assert.False(t, StatusCancelled.ClaimsSlot())
	assert.False(t, BookingStatus("archived").IsValid())
}

func TestBooking_RoleOf(t *testing.T) {
	client := uuid.New()
	therapistUser := uuid.New()
	businessUser := uuid.New()
	stranger := uuid.New()

	b := &Booking{ClientID: client, TherapistUserID: &therapistUser}
	assert.Equal(t, RoleClient, b.RoleOf(client))
	assert.Equal(t, RoleTherapist, b.RoleOf(therapistUser))
	assert.Equal(t, RoleNone, b.RoleOf(stranger))

	b = &Booking{ClientID: client, BusinessUserID: &businessUser}
	assert.Equal(t, RoleBusiness, b.RoleOf(businessUser))
	assert.Equal(t, &businessUser, b.CounterpartOf(client))
	assert.Equal(t, client, *b.CounterpartOf(businessUser))
}

func TestAppendReason(t *testing.T) {
	assert.Nil(t, AppendReason(nil, RoleClient, "  "))

	got := AppendReason(nil, RoleClient, "sick")
	require.NotNil(t, got)
	assert.Equal(t, "\n\n[Client]: sick", *got)

	got = AppendReason(ptr.Ptr("first visit"), RoleTherapist, "on leave")
	assert.Equal(t, "first visit\n\n[Terapeut]: on leave", *got)
}

func TestDayName_UsesUTC(t *testing.T) {
	tuesday := time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "tuesday", DayName(tuesday))

	// 2025-12-02 01:00 in UTC+3 is still Monday in UTC
	loc := time.FixedZone("UTC+3", 3*3600)
	assert.Equal(t, "monday", DayName(time.Date(2025, 12, 2, 1, 0, 0, 0, loc)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-02")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, "tuesday", DayName(d))

	_, err = ParseDate("02.12.2025")
	assert.Error(t, err)
}

func TestTargetRef_Validate(t *testing.T) {
	id := uuid.New()

	assert.ErrorIs(t, TargetRef{}.Validate(), ErrTargetMissing)
	assert.ErrorIs(t, TargetRef{ProviderID: &id, BusinessID: &id}.Validate(), ErrTargetAmbiguous)
	assert.NoError(t, TargetRef{OfferID: &id}.Validate())
	assert.NoError(t, TargetRef{BusinessID: &id, OfferID: &id}.Validate())

	target, ok := TargetRef{BusinessID: &id}.Direct()
	assert.True(t, ok)
	assert.Equal(t, Target{Kind: ProviderKindBusiness, ProviderID: id}, target)
}

func TestOffer_Owner(t *testing.T) {
	therapist := uuid.New()
	business := uuid.New()

	owner, ok := (&Offer{ProviderID: &therapist, BusinessID: &business}).Owner()
	assert.True(t, ok)
	assert.Equal(t, ProviderKindTherapist, owner.Kind)

	owner, ok = (&Offer{BusinessID: &business}).Owner()
	assert.True(t, ok)
	assert.Equal(t, business, owner.ProviderID)

	_, ok = (&Offer{}).Owner()
	assert.False(t, ok)
}

func TestWeeklySchedule_Scan(t *testing.T) {
	var w WeeklySchedule
	require.NoError(t, w.Scan([]byte(`{"monday":{"active":false,"slots":["09:00"]},"tuesday":{"active":true,"slots":["10:00"]}}`)))
	assert.False(t, w["monday"].Active)
	assert.Equal(t, []string{"10:00"}, w["tuesday"].Slots)

	var empty WeeklySchedule
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}

func TestWeeklySchedule_ScanNullDayIsMissing(t *testing.T) {
	var w WeeklySchedule
	require.NoError(t, w.Scan(`{"monday":{"active":true,"slots":["09:00"]},"tuesday":null}`))

	_, ok := w["tuesday"]
	assert.False(t, ok)
	assert.True(t, w["monday"].Active)
}

func TestOfferAvailability_ScanNullDayIsMissing(t *testing.T) {
	var a OfferAvailability
	require.NoError(t, a.Scan([]byte(`{"friday":["15:00"],"saturday":null}`)))

	_, ok := a["saturday"]
	assert.False(t, ok)
	assert.Equal(t, []string{"15:00"}, a["friday"])
}

func TestNotificationPreferences(t *testing.T) {
	var nilPrefs *NotificationPreferences
	assert.True(t, nilPrefs.AllowsBookingEmail())
	assert.True(t, (&NotificationPreferences{}).AllowsBookingEmail())
	assert.False(t, (&NotificationPreferences{EmailBooking: ptr.Ptr(false)}).AllowsBookingEmail())
}

func TestPreview(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, Preview(short))

	long := make([]rune, 150)
	for i := range long {
		long[i] = 'ă'
	}
	got := Preview(string(long))
	assert.Equal(t, MessagePreviewLength+3, len([]rune(got)))
}
