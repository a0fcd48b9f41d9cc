package message

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/pkg/dbmetrics"
	"github.com/terapiemd/booking-service/pkg/psqlbuilder"
)

// Repository stores booking chat messages
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a message repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a message
func (r *Repository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("booking_messages").
		Columns("id", "booking_id", "sender_id", "content").
		Values(msg.ID, msg.BookingID, msg.SenderID, msg.Content).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&msg.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return msg, nil
}

// ListByBooking returns the messages of a booking in posting order
func (r *Repository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "sender_id", "content", "read_at", "created_at").
		From("booking_messages").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var (
			msg    domain.Message
			readAt sql.NullTime
		)
		if err := rows.Scan(&msg.ID, &msg.BookingID, &msg.SenderID, &msg.Content, &readAt, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}
		if readAt.Valid {
			msg.ReadAt = &readAt.Time
		}
		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return messages, nil
}

// MarkRead marks the messages readerID received on a booking as read
func (r *Repository) MarkRead(ctx context.Context, bookingID, readerID uuid.UUID) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_messages").
		Set("read_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.NotEq{"sender_id": readerID}).
		Where(squirrel.Eq{"read_at": nil}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}
	return n, nil
}

// CountUnread returns, per booking, how many messages readerID has not read yet
func (r *Repository) CountUnread(ctx context.Context, bookingIDs []uuid.UUID, readerID uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return counts, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("booking_id", "COUNT(*)").
		From("booking_messages").
		Where(squirrel.Eq{"booking_id": bookingIDs}).
		Where(squirrel.NotEq{"sender_id": readerID}).
		Where(squirrel.Eq{"read_at": nil}).
		GroupBy("booking_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountUnread - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountUnread - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    uuid.UUID
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("%w: CountUnread - scan row: %v", ErrScanRow, err)
		}
		counts[id] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountUnread - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}
