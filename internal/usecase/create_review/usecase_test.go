package create_review

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/infra/storage/memory"
	"github.com/terapiemd/booking-service/pkg/logger"
	"github.com/terapiemd/booking-service/pkg/ptr"
	"github.com/terapiemd/booking-service/pkg/types"
)

type fixture struct {
	store    *memory.Store
	provider *domain.Provider
	uc       *UseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store:    store,
		provider: store.AddProvider(domain.Provider{Kind: domain.ProviderKindBusiness, Name: "Zen Spa"}),
		uc:       NewUseCase(store.Bookings(), store.Reviews(), logger.NewNop()),
	}
}

func (f *fixture) booking(t *testing.T, at string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		ClientID:   uuid.New(),
		BusinessID: &f.provider.ID,
		Date:       time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC),
		Time:       types.TimeString(at),
		Status:     status,
	})
	require.NoError(t, err)
	return b
}

func TestExecute_ReviewsCompletedBooking(t *testing.T) {
	f := newFixture()
	b := f.booking(t, "10:00", domain.StatusCompleted)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ClientID:  b.ClientID,
		BookingID: b.ID,
		Rating:    5,
		Comment:   ptr.Ptr("  very relaxing \n"),
	})
	require.NoError(t, err)

	rv := resp.Review
	assert.NotEqual(t, uuid.Nil, rv.ID)
	assert.Equal(t, b.ID, rv.BookingID)
	assert.Nil(t, rv.TherapistID)
	require.NotNil(t, rv.BusinessID)
	assert.Equal(t, f.provider.ID, *rv.BusinessID)
	assert.Equal(t, 5, rv.Rating)
	require.NotNil(t, rv.Comment)
	assert.Equal(t, "very relaxing", *rv.Comment)
}

func TestExecute_BlankCommentIsDropped(t *testing.T) {
	f := newFixture()
	b := f.booking(t, "10:00", domain.StatusCompleted)

	resp, err := f.uc.Execute(context.Background(), &Request{ClientID: b.ClientID, BookingID: b.ID, Rating: 3, Comment: ptr.Ptr("   ")})
	require.NoError(t, err)
	assert.Nil(t, resp.Review.Comment)
}

func TestExecute_SecondReviewOfSameProvider(t *testing.T) {
	f := newFixture()
	first := f.booking(t, "10:00", domain.StatusCompleted)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: first.ClientID, BookingID: first.ID, Rating: 4})
	require.NoError(t, err)

	// a later completed visit with the same provider does not earn another review
	second, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		ClientID:   first.ClientID,
		BusinessID: &f.provider.ID,
		Date:       time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC),
		Time:       "10:00",
		Status:     domain.StatusCompleted,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{ClientID: first.ClientID, BookingID: second.ID, Rating: 1})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestExecute_Rejections(t *testing.T) {
	f := newFixture()
	completed := f.booking(t, "10:00", domain.StatusCompleted)
	confirmed := f.booking(t, "11:00", domain.StatusConfirmed)
	cancelled := f.booking(t, "12:00", domain.StatusCancelled)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "rating too low", req: Request{ClientID: completed.ClientID, BookingID: completed.ID, Rating: 0}, wantErr: ErrInvalidInput},
		{name: "rating too high", req: Request{ClientID: completed.ClientID, BookingID: completed.ID, Rating: 6}, wantErr: ErrInvalidInput},
		{name: "comment too long", req: Request{ClientID: completed.ClientID, BookingID: completed.ID, Rating: 4, Comment: ptr.Ptr(strings.Repeat("x", domain.MaxReviewCommentLength+1))}, wantErr: ErrInvalidInput},
		{name: "no booking id", req: Request{ClientID: completed.ClientID, Rating: 4}, wantErr: ErrInvalidInput},
		{name: "unknown booking", req: Request{ClientID: completed.ClientID, BookingID: uuid.New(), Rating: 4}, wantErr: ErrBookingNotFound},
		{name: "someone else's booking", req: Request{ClientID: uuid.New(), BookingID: completed.ID, Rating: 4}, wantErr: ErrBookingNotFound},
		{name: "provider cannot review", req: Request{ClientID: f.provider.UserID, BookingID: completed.ID, Rating: 4}, wantErr: ErrBookingNotFound},
		{name: "confirmed booking", req: Request{ClientID: confirmed.ClientID, BookingID: confirmed.ID, Rating: 4}, wantErr: ErrNotCompleted},
		{name: "cancelled booking", req: Request{ClientID: cancelled.ClientID, BookingID: cancelled.ID, Rating: 4}, wantErr: ErrNotCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.uc.Execute(context.Background(), &req)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
