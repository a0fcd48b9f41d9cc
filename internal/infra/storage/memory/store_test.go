package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terapiemd/booking-service/internal/domain"
	bookingRepo "github.com/terapiemd/booking-service/internal/infra/storage/booking"
	scheduleRepo "github.com/terapiemd/booking-service/internal/infra/storage/schedule"
	reviewRepo "github.com/terapiemd/booking-service/internal/infra/storage/review"
	userRepo "github.com/terapiemd/booking-service/internal/infra/storage/user"
	"github.com/terapiemd/booking-service/pkg/ptr"
)

var testDate = time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC)

func seedTherapist(s *Store) *domain.Provider {
	return s.AddProvider(domain.Provider{
		Kind:           domain.ProviderKindTherapist,
		Name:           "Ana Popescu",
		AvailableSlots: []string{"09:00", "10:00"},
	})
}

func TestBookingRepository_CreateRejectsClaimedSlot(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedTherapist(s)
	repo := s.Bookings()

	first, err := repo.Create(ctx, &domain.Booking{
		ClientID:    uuid.New(),
		TherapistID: &p.ID,
		Date:        testDate,
		Time:        "09:00",
		Status:      domain.StatusPending,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)

	_, err = repo.Create(ctx, &domain.Booking{
		ClientID:    uuid.New(),
		TherapistID: &p.ID,
		Date:        testDate,
		Time:        "09:00",
		Status:      domain.StatusPending,
	})
	assert.ErrorIs(t, err, bookingRepo.ErrSlotAlreadyTaken)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, domain.StatusCancelled, nil))

	_, err = repo.Create(ctx, &domain.Booking{
		ClientID:    uuid.New(),
		TherapistID: &p.ID,
		Date:        testDate,
		Time:        "09:00",
		Status:      domain.StatusPending,
	})
	assert.NoError(t, err)
}

func TestBookingRepository_CreateConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedTherapist(s)
	repo := s.Bookings()

	const workers = 20
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		conflict int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Booking{
				ClientID:    uuid.New(),
				TherapistID: &p.ID,
				Date:        testDate,
				Time:        "10:00",
				Status:      domain.StatusPending,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, bookingRepo.ErrSlotAlreadyTaken) {
				conflict++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflict)
}

func TestBookingRepository_ListClaimedTimes(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedTherapist(s)
	repo := s.Bookings()
	target := domain.Target{Kind: domain.ProviderKindTherapist, ProviderID: p.ID}

	for _, b := range []domain.Booking{
		{Time: "09:00:00", Status: domain.StatusConfirmed},
		{Time: "11:00", Status: domain.StatusCancelled},
		{Time: "12:00", Status: domain.StatusCompleted},
	} {
		b := b
		b.ClientID = uuid.New()
		b.TherapistID = &p.ID
		b.Date = testDate
		_, err := repo.Create(ctx, &b)
		require.NoError(t, err)
	}

	claimed, err := repo.ListClaimedTimes(ctx, target, testDate)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"09:00": {}, "12:00": {}}, claimed)

	other, err := repo.ListClaimedTimes(ctx, target, testDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, other)

	taken, err := repo.IsSlotClaimed(ctx, target, testDate, "09:00")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestBookingRepository_ReadSide(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedTherapist(s)
	client := s.AddUser(User{Name: "Ion", Email: "ion@example.com", Phone: "+37369000000"})
	repo := s.Bookings()

	created, err := repo.Create(ctx, &domain.Booking{
		ClientID:    client.ID,
		TherapistID: &p.ID,
		Date:        testDate,
		Time:        "09:00",
		Status:      domain.StatusPending,
		Notes:       ptr.Ptr("first visit"),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TherapistUserID)
	assert.Equal(t, p.UserID, *got.TherapistUserID)
	assert.Equal(t, "Ana Popescu", got.ProviderName)

	list, err := repo.ListByProvider(ctx, domain.Target{Kind: domain.ProviderKindTherapist, ProviderID: p.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Client)
	assert.Equal(t, "Ion", list[0].Client.Name)
	assert.Equal(t, "ion@example.com", *list[0].Client.Email)

	mine, err := repo.ListByClient(ctx, domain.ClientBookingsFilter{ClientID: client.ID, Status: ptr.Ptr(domain.StatusConfirmed)})
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), domain.StatusConfirmed, nil), bookingRepo.ErrBookingNotFound)
}

func TestScheduleRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	p := seedTherapist(s)
	repo := s.Schedules()

	got, err := repo.GetProviderByUserID(ctx, domain.ProviderKindTherapist, p.UserID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = repo.GetProvider(ctx, domain.ProviderKindBusiness, p.ID)
	assert.ErrorIs(t, err, scheduleRepo.ErrProviderNotFound)

	weekly := domain.WeeklySchedule{"monday": {Active: true, Slots: []string{"08:00"}}}
	updated, err := repo.UpdateSchedule(ctx, domain.ProviderKindTherapist, p.ID, weekly, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00"}, updated.WeeklySchedule["monday"].Slots)
	assert.Empty(t, updated.AvailableSlots)

	// caller mutations do not leak into the store
	weekly["monday"] = domain.DaySchedule{Active: false}
	again, err := repo.GetProvider(ctx, domain.ProviderKindTherapist, p.ID)
	require.NoError(t, err)
	assert.True(t, again.WeeklySchedule["monday"].Active)

	_, err = repo.GetOffer(ctx, uuid.New())
	assert.ErrorIs(t, err, scheduleRepo.ErrOfferNotFound)
}

func TestMessageRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Messages()

	bookingID := uuid.New()
	client := uuid.New()
	provider := uuid.New()

	_, err := repo.Create(ctx, &domain.Message{BookingID: bookingID, SenderID: client, Content: "hello"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Message{BookingID: bookingID, SenderID: client, Content: "are you there?"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Message{BookingID: bookingID, SenderID: provider, Content: "yes"})
	require.NoError(t, err)

	counts, err := repo.CountUnread(ctx, []uuid.UUID{bookingID}, provider)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[bookingID])

	marked, err := repo.MarkRead(ctx, bookingID, provider)
	require.NoError(t, err)
	assert.Equal(t, int64(2), marked)

	counts, err = repo.CountUnread(ctx, []uuid.UUID{bookingID}, provider)
	require.NoError(t, err)
	assert.Zero(t, counts[bookingID])

	thread, err := repo.ListByBooking(ctx, bookingID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "hello", thread[0].Content)
	assert.Nil(t, thread[2].ReadAt)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := s.AddUser(User{Preferences: domain.NotificationPreferences{EmailBooking: ptr.Ptr(false)}})

	prefs, err := s.Users().GetNotificationPreferences(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, prefs.AllowsBookingEmail())

	_, err = s.Users().GetNotificationPreferences(ctx, uuid.New())
	assert.ErrorIs(t, err, userRepo.ErrUserNotFound)
}

func TestTxManager_NestedDoesNotDeadlock(t *testing.T) {
	m := NewTxManager()
	calls := 0

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return m.Do(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestReviewRepository_OnePerClientAndProvider(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	therapist := seedTherapist(s)
	business := s.AddProvider(domain.Provider{Kind: domain.ProviderKindBusiness, Name: "Zen Spa"})
	repo := s.Reviews()
	clientID := uuid.New()

	first, err := repo.Create(ctx, &domain.Review{BookingID: uuid.New(), ClientID: clientID, TherapistID: &therapist.ID, Rating: 4})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	_, err = repo.Create(ctx, &domain.Review{BookingID: uuid.New(), ClientID: clientID, TherapistID: &therapist.ID, Rating: 5})
	assert.ErrorIs(t, err, reviewRepo.ErrAlreadyReviewed)

	// another provider or another client is fine
	_, err = repo.Create(ctx, &domain.Review{BookingID: uuid.New(), ClientID: clientID, BusinessID: &business.ID, Rating: 5})
	assert.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Review{BookingID: uuid.New(), ClientID: uuid.New(), TherapistID: &therapist.ID, Rating: 3})
	assert.NoError(t, err)
}
