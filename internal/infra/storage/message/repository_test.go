package message

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terapiemd/booking-service/internal/domain"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)
	bookingID, senderID := uuid.New(), uuid.New()
	created := time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO booking_messages (id,booking_id,sender_id,content) VALUES ($1,$2,$3,$4) RETURNING created_at`)).
		WithArgs(sqlmock.AnyArg(), bookingID.String(), senderID.String(), "see you at ten").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	msg, err := repo.Create(context.Background(), &domain.Message{BookingID: bookingID, SenderID: senderID, Content: "see you at ten"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, created, msg.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByBooking(t *testing.T) {
	repo, mock := newMockRepository(t)
	bookingID := uuid.New()
	readAt := time.Date(2025, 12, 1, 11, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM booking_messages WHERE booking_id = $1 ORDER BY created_at ASC`)).
		WithArgs(bookingID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "sender_id", "content", "read_at", "created_at"}).
			AddRow(uuid.New().String(), bookingID.String(), uuid.New().String(), "first", readAt, readAt.Add(-time.Hour)).
			AddRow(uuid.New().String(), bookingID.String(), uuid.New().String(), "second", nil, readAt))

	messages, err := repo.ListByBooking(context.Background(), bookingID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.NotNil(t, messages[0].ReadAt)
	assert.Equal(t, readAt, *messages[0].ReadAt)
	assert.Nil(t, messages[1].ReadAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkRead(t *testing.T) {
	repo, mock := newMockRepository(t)
	bookingID, readerID := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE booking_messages SET read_at = NOW() WHERE booking_id = $1 AND sender_id <> $2 AND read_at IS NULL`)).
		WithArgs(bookingID.String(), readerID.String()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.MarkRead(context.Background(), bookingID, readerID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountUnread(t *testing.T) {
	t.Run("no bookings skips the query", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		counts, err := repo.CountUnread(context.Background(), nil, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, counts)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("grouped counts", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		first, second := uuid.New(), uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT booking_id, COUNT(*) FROM booking_messages WHERE booking_id IN ($1,$2)`)).
			WillReturnRows(sqlmock.NewRows([]string{"booking_id", "count"}).AddRow(first.String(), 2))

		counts, err := repo.CountUnread(context.Background(), []uuid.UUID{first, second}, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int{first: 2}, counts)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM booking_messages`)).WillReturnError(errors.New("timeout"))

		_, err := repo.CountUnread(context.Background(), []uuid.UUID{uuid.New()}, uuid.New())
		assert.ErrorIs(t, err, ErrExecQuery)
	})
}
