package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/infra/storage/memory"
	"github.com/terapiemd/booking-service/pkg/logger"
	"github.com/terapiemd/booking-service/pkg/types"
)

// 2025-12-02 is a Tuesday, 2025-12-05 a Friday, 2025-12-01 a Monday
var (
	tuesday = time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)
	friday  = time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)
	monday  = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	store *memory.Store
	uc    *UseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store: store,
		uc:    NewUseCase(store.Schedules(), store.Bookings(), logger.NewNop()),
	}
}

func (f *fixture) therapist(weekly domain.WeeklySchedule, defaults ...string) *domain.Provider {
	return f.store.AddProvider(domain.Provider{
		Kind:           domain.ProviderKindTherapist,
		Name:           "Ana",
		WeeklySchedule: weekly,
		AvailableSlots: defaults,
	})
}

func (f *fixture) book(t *testing.T, p *domain.Provider, date time.Time, at string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		ClientID:    uuid.New(),
		TherapistID: &p.ID,
		Date:        date,
		Time:        types.TimeString(at),
		Status:      status,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) slots(t *testing.T, ref domain.TargetRef, date time.Time) []string {
	t.Helper()
	resp, err := f.uc.Execute(context.Background(), &Request{Target: ref, Date: date})
	require.NoError(t, err)
	return resp.Slots
}

var tuesdaySchedule = domain.WeeklySchedule{
	"tuesday": {Active: true, Slots: []string{"09:00", "10:00", "11:00"}},
}

func TestExecute_Scenarios(t *testing.T) {
	t.Run("A: no bookings", func(t *testing.T) {
		f := newFixture()
		p := f.therapist(tuesdaySchedule)
		assert.Equal(t, []string{"09:00", "10:00", "11:00"}, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday))
	})

	t.Run("B: pending booking blocks its slot", func(t *testing.T) {
		f := newFixture()
		p := f.therapist(tuesdaySchedule)
		f.book(t, p, tuesday, "10:00", domain.StatusPending)
		assert.Equal(t, []string{"09:00", "11:00"}, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday))
	})

	t.Run("C: cancelled booking does not block", func(t *testing.T) {
		f := newFixture()
		p := f.therapist(tuesdaySchedule)
		f.book(t, p, tuesday, "10:00", domain.StatusCancelled)
		assert.Equal(t, []string{"09:00", "10:00", "11:00"}, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday))
	})

	t.Run("D: missing day falls back to default slots", func(t *testing.T) {
		f := newFixture()
		p := f.therapist(domain.WeeklySchedule{"monday": {Active: true, Slots: []string{"08:00"}}}, "14:00")
		assert.Equal(t, []string{"14:00"}, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday))
	})

	t.Run("D: day stored as null falls back to default slots", func(t *testing.T) {
		var weekly domain.WeeklySchedule
		require.NoError(t, weekly.Scan([]byte(`{"monday":{"active":true,"slots":["08:00"]},"tuesday":null}`)))

		f := newFixture()
		p := f.therapist(weekly, "14:00")
		assert.Equal(t, []string{"14:00"}, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday))
	})
}

func TestExecute_ClaimedTimesWithSecondsAndUnconfirmed(t *testing.T) {
	f := newFixture()
	p := f.therapist(tuesdaySchedule)
	f.book(t, p, tuesday, "09:00:00", domain.StatusUnconfirmed)
	f.book(t, p, tuesday, "11:00", domain.StatusCompleted)
	f.book(t, p, tuesday.AddDate(0, 0, 7), "10:00", domain.StatusConfirmed)

	assert.Equal(t, []string{"10:00"}, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday))
}

func TestExecute_SubsequenceAndExclusion(t *testing.T) {
	f := newFixture()
	p := f.therapist(domain.WeeklySchedule{
		"tuesday": {Active: true, Slots: []string{"16:00", "09:00", "12:30", "09:00", "10:15"}},
	})
	f.book(t, p, tuesday, "09:00", domain.StatusConfirmed)
	f.book(t, p, tuesday, "10:15", domain.StatusPending)

	resolved, err := f.uc.ResolveTarget(context.Background(), domain.TargetRef{ProviderID: &p.ID})
	require.NoError(t, err)
	base := f.uc.ResolveBaseSlots(resolved, tuesday)
	free := f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday)

	assert.Equal(t, []string{"16:00", "12:30"}, free)

	// free keeps the relative order of base
	i := 0
	for _, s := range base {
		if i < len(free) && free[i] == s {
			i++
		}
	}
	assert.Equal(t, len(free), i)

	claimed, err := f.store.Bookings().ListClaimedTimes(context.Background(), resolved.Target, tuesday)
	require.NoError(t, err)
	for _, s := range free {
		assert.NotContains(t, claimed, s)
	}
}

func TestResolveBaseSlots_InactiveDayWinsOverDefaults(t *testing.T) {
	f := newFixture()
	p := f.therapist(domain.WeeklySchedule{"monday": {Active: false, Slots: []string{"09:00"}}}, "14:00", "15:00")

	assert.Empty(t, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, monday))
}

func TestResolveBaseSlots_OfferOverride(t *testing.T) {
	f := newFixture()
	p := f.therapist(domain.WeeklySchedule{"friday": {Active: true, Slots: []string{"15:00", "16:00"}}})
	offer := f.store.AddOffer(domain.Offer{
		ProviderID:   &p.ID,
		Availability: domain.OfferAvailability{"friday": {"09:00", "10:00"}},
	})

	assert.Equal(t, []string{"09:00", "10:00"}, f.slots(t, domain.TargetRef{OfferID: &offer.ID}, friday))

	// no entry for the day: the offer is closed, no fallback to the provider
	assert.Empty(t, f.slots(t, domain.TargetRef{OfferID: &offer.ID}, tuesday))

	// claims against the owning provider still block offer slots
	f.book(t, p, friday, "10:00", domain.StatusPending)
	assert.Equal(t, []string{"09:00"}, f.slots(t, domain.TargetRef{OfferID: &offer.ID}, friday))
}

func TestResolveBaseSlots_SkipsMalformedAndNormalizes(t *testing.T) {
	f := newFixture()
	p := f.therapist(domain.WeeklySchedule{"tuesday": {Active: true, Slots: []string{"09:00:00", "nine", "25:00", "10:30"}}})

	assert.Equal(t, []string{"09:00", "10:30"}, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday))
}

func TestResolveTarget(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.therapist(nil)
	business := f.store.AddProvider(domain.Provider{Kind: domain.ProviderKindBusiness, Name: "Spa"})
	shared := f.store.AddOffer(domain.Offer{ProviderID: &p.ID, BusinessID: &business.ID})
	orphan := f.store.AddOffer(domain.Offer{})
	missing := uuid.New()

	resolved, err := f.uc.ResolveTarget(ctx, domain.TargetRef{OfferID: &shared.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.Target{Kind: domain.ProviderKindTherapist, ProviderID: p.ID}, resolved.Target)

	resolved, err = f.uc.ResolveTarget(ctx, domain.TargetRef{BusinessID: &business.ID, OfferID: &shared.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.Target{Kind: domain.ProviderKindBusiness, ProviderID: business.ID}, resolved.Target)

	tests := []struct {
		name    string
		ref     domain.TargetRef
		wantErr error
	}{
		{name: "nothing", ref: domain.TargetRef{}, wantErr: ErrInvalidInput},
		{name: "both", ref: domain.TargetRef{ProviderID: &p.ID, BusinessID: &business.ID}, wantErr: ErrInvalidInput},
		{name: "unknown provider", ref: domain.TargetRef{ProviderID: &missing}, wantErr: ErrProviderNotFound},
		{name: "wrong kind", ref: domain.TargetRef{BusinessID: &p.ID}, wantErr: ErrProviderNotFound},
		{name: "unknown offer", ref: domain.TargetRef{OfferID: &missing}, wantErr: ErrOfferNotFound},
		{name: "ownerless offer", ref: domain.TargetRef{OfferID: &orphan.ID}, wantErr: ErrOfferNotFound},
		{name: "foreign offer", ref: domain.TargetRef{ProviderID: &missing, OfferID: &shared.ID}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.ResolveTarget(ctx, tt.ref)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExecute_CancellationFreesSlot(t *testing.T) {
	f := newFixture()
	p := f.therapist(tuesdaySchedule)
	b := f.book(t, p, tuesday, "10:00", domain.StatusPending)

	assert.NotContains(t, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday), "10:00")

	require.NoError(t, f.store.Bookings().UpdateStatus(context.Background(), b.ID, domain.StatusCancelled, nil))
	assert.Contains(t, f.slots(t, domain.TargetRef{ProviderID: &p.ID}, tuesday), "10:00")
}

func TestExecute_ValidationAndStorageFailure(t *testing.T) {
	f := newFixture()
	p := f.therapist(tuesdaySchedule)

	_, err := f.uc.Execute(context.Background(), &Request{Target: domain.TargetRef{ProviderID: &p.ID}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	uc := NewUseCase(f.store.Schedules(), failingLedger{}, logger.NewNop())
	_, err = uc.Execute(context.Background(), &Request{Target: domain.TargetRef{ProviderID: &p.ID}, Date: tuesday})
	assert.ErrorIs(t, err, ErrInternal)

	// closed day short-circuits before the ledger is read
	resp, err := uc.Execute(context.Background(), &Request{Target: domain.TargetRef{ProviderID: &p.ID}, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

type failingLedger struct{}

func (failingLedger) ListClaimedTimes(context.Context, domain.Target, time.Time) (map[string]struct{}, error) {
	return nil, errors.New("connection reset")
}
