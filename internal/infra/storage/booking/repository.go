package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/pkg/dbmetrics"
	"github.com/terapiemd/booking-service/pkg/psqlbuilder"
	"github.com/terapiemd/booking-service/pkg/types"
)

const codeUniqueViolation = "23505"

// bookingColumns are shared by every read that returns full bookings
var bookingColumns = []string{
	"b.id",
	"b.client_id",
	"b.therapist_id",
	"b.business_id",
	"b.offer_id",
	"b.date",
	"b.time",
	"b.status",
	"b.notes",
	"b.created_at",
	"b.updated_at",
	"tp.user_id",
	"bp.user_id",
	"COALESCE(tp.name, bp.company_name, '')",
}

// Repository is the reservation ledger backed by the bookings table.
// Driver errors are wrapped with %w so serialization failures stay visible to the transaction manager.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a ledger repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking. A collision with the per-slot unique index yields ErrSlotAlreadyTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"client_id",
			"therapist_id",
			"business_id",
			"offer_id",
			"date",
			"time",
			"status",
			"notes",
		).
		Values(
			booking.ID,
			booking.ClientID,
			nullUUID(booking.TherapistID),
			nullUUID(booking.BusinessID),
			nullUUID(booking.OfferID),
			booking.Date.Format(domain.DateFormat),
			booking.Time,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID returns a booking with the owning accounts of its therapist/business
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate is GetByID that row-locks the booking for the current transaction
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id uuid.UUID, lock bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectBookings().Where(squirrel.Eq{"b.id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListClaimedTimes returns the HH:MM times of every non-cancelled booking of target on date
func (r *Repository) ListClaimedTimes(ctx context.Context, target domain.Target, date time.Time) (map[string]struct{}, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := targetColumn(target.Kind)
	if err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select("time").
		From("bookings").
		Where(squirrel.Eq{column: target.ProviderID}).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListClaimedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClaimedTimes - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	claimed := make(map[string]struct{})
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ListClaimedTimes - scan row: %w", ErrScanRow, err)
		}
		claimed[t.String()] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClaimedTimes - rows error: %w", ErrScanRow, err)
	}

	return claimed, nil
}

// IsSlotClaimed reports whether a non-cancelled booking holds the slot.
// Inside a transaction the matching row is locked until commit.
func (r *Repository) IsSlotClaimed(ctx context.Context, target domain.Target, date time.Time, at types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := targetColumn(target.Kind)
	if err != nil {
		return false, err
	}

	query, args, err := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{column: target.ProviderID}).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"time": at}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsSlotClaimed - build select query: %v", ErrBuildQuery, err)
	}

	var id uuid.UUID
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsSlotClaimed - execute select: %w", ErrExecQuery, err)
	}

	return true, nil
}

// UpdateStatus sets status and notes of a booking
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus, notes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlotAlreadyTaken
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListByClient returns a client's bookings, newest appointment first
func (r *Repository) ListByClient(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectBookings().
		Where(squirrel.Eq{"b.client_id": filter.ClientID}).
		OrderBy("b.date DESC", "b.time DESC")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByClient - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByClient - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// ListByProvider returns the bookings of a profile with client contact data, most recent first
func (r *Repository) ListByProvider(ctx context.Context, target domain.Target) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := targetColumn(target.Kind)
	if err != nil {
		return nil, err
	}

	columns := append(append([]string{}, bookingColumns...), "COALESCE(u.name, '')", "u.email", "u.phone")

	query, args, err := psqlbuilder.Select(columns...).
		From("bookings b").
		LeftJoin("therapist_profiles tp ON tp.id = b.therapist_id").
		LeftJoin("business_profiles bp ON bp.id = b.business_id").
		LeftJoin("users u ON u.id = b.client_id").
		Where(squirrel.Eq{"b." + column: target.ProviderID}).
		OrderBy("b.created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - execute select: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var (
			booking domain.Booking
			client  domain.ClientProfile
			email   sql.NullString
			phone   sql.NullString
		)

		br := newBookingRow(&booking)
		dest := append(br.dest(), &client.Name, &email, &phone)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: ListByProvider - scan row: %w", ErrScanRow, err)
		}
		br.finish()

		if email.Valid {
			client.Email = &email.String
		}
		if phone.Valid {
			client.Phone = &phone.String
		}
		booking.Client = &client

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("therapist_profiles tp ON tp.id = b.therapist_id").
		LeftJoin("business_profiles bp ON bp.id = b.business_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// bookingRow holds nullable columns until they are copied onto the booking
type bookingRow struct {
	booking         *domain.Booking
	therapistID     uuid.NullUUID
	businessID      uuid.NullUUID
	offerID         uuid.NullUUID
	therapistUserID uuid.NullUUID
	businessUserID  uuid.NullUUID
	notes           sql.NullString
}

func newBookingRow(booking *domain.Booking) *bookingRow {
	return &bookingRow{booking: booking}
}

// dest lists scan targets in bookingColumns order
func (r *bookingRow) dest() []interface{} {
	return []interface{}{
		&r.booking.ID,
		&r.booking.ClientID,
		&r.therapistID,
		&r.businessID,
		&r.offerID,
		&r.booking.Date,
		&r.booking.Time,
		&r.booking.Status,
		&r.notes,
		&r.booking.CreatedAt,
		&r.booking.UpdatedAt,
		&r.therapistUserID,
		&r.businessUserID,
		&r.booking.ProviderName,
	}
}

func (r *bookingRow) finish() {
	r.booking.TherapistID = uuidPtr(r.therapistID)
	r.booking.BusinessID = uuidPtr(r.businessID)
	r.booking.OfferID = uuidPtr(r.offerID)
	r.booking.TherapistUserID = uuidPtr(r.therapistUserID)
	r.booking.BusinessUserID = uuidPtr(r.businessUserID)
	if r.notes.Valid {
		notes := r.notes.String
		r.booking.Notes = &notes
	}
	r.booking.Date = r.booking.Date.UTC()
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	br := newBookingRow(&booking)
	if err := row.Scan(br.dest()...); err != nil {
		return nil, err
	}
	br.finish()
	return &booking, nil
}

func targetColumn(kind domain.ProviderKind) (string, error) {
	switch kind {
	case domain.ProviderKindTherapist:
		return "therapist_id", nil
	case domain.ProviderKindBusiness:
		return "business_id", nil
	default:
		return "", fmt.Errorf("%w: kind=%q", ErrInvalidTarget, kind)
	}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(n uuid.NullUUID) *uuid.UUID {
	if !n.Valid {
		return nil
	}
	id := n.UUID
	return &id
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation
}
