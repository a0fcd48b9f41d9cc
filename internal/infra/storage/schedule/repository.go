package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/pkg/dbmetrics"
	"github.com/terapiemd/booking-service/pkg/psqlbuilder"
)

// profileTable describes where each provider kind keeps its schedule
type profileTable struct {
	name       string
	nameColumn string
}

var profileTables = map[domain.ProviderKind]profileTable{
	domain.ProviderKindTherapist: {name: "therapist_profiles", nameColumn: "name"},
	domain.ProviderKindBusiness:  {name: "business_profiles", nameColumn: "company_name"},
}

// Repository reads provider schedules and offers
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a schedule repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetProvider returns a therapist or business profile by id
func (r *Repository) GetProvider(ctx context.Context, kind domain.ProviderKind, id uuid.UUID) (*domain.Provider, error) {
	return r.getProvider(ctx, kind, squirrel.Eq{"id": id}, "GetProvider")
}

// GetProviderByUserID returns the profile of the given kind owned by userID
func (r *Repository) GetProviderByUserID(ctx context.Context, kind domain.ProviderKind, userID uuid.UUID) (*domain.Provider, error) {
	return r.getProvider(ctx, kind, squirrel.Eq{"user_id": userID}, "GetProviderByUserID")
}

func (r *Repository) getProvider(ctx context.Context, kind domain.ProviderKind, where squirrel.Eq, method string) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, ok := profileTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s - kind=%q", ErrInvalidKind, method, kind)
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		table.nameColumn,
		"weekly_schedule",
		"available_slots",
		"updated_at",
	).
		From(table.name).
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	provider := domain.Provider{Kind: kind}
	var slots pq.StringArray

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&provider.ID,
		&provider.UserID,
		&provider.Name,
		&provider.WeeklySchedule,
		&slots,
		&provider.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan provider: %w", ErrScanRow, method, err)
	}

	provider.AvailableSlots = []string(slots)
	return &provider, nil
}

// GetOffer returns an offer with its availability map
func (r *Repository) GetOffer(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"business_id",
		"title",
		"availability",
	).
		From("offers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOffer - build select query: %v", ErrBuildQuery, err)
	}

	var (
		offer      domain.Offer
		providerID uuid.NullUUID
		businessID uuid.NullUUID
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&offer.ID,
		&providerID,
		&businessID,
		&offer.Title,
		&offer.Availability,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOffer - scan offer: %w", ErrScanRow, err)
	}

	if providerID.Valid {
		offer.ProviderID = &providerID.UUID
	}
	if businessID.Valid {
		offer.BusinessID = &businessID.UUID
	}

	return &offer, nil
}

// UpdateSchedule replaces the weekly schedule and default slots of a profile
func (r *Repository) UpdateSchedule(
	ctx context.Context,
	kind domain.ProviderKind,
	id uuid.UUID,
	weekly domain.WeeklySchedule,
	slots []string,
) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	table, ok := profileTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: UpdateSchedule - kind=%q", ErrInvalidKind, kind)
	}

	if slots == nil {
		slots = []string{}
	}

	query, args, err := psqlbuilder.Update(table.name).
		Set("weekly_schedule", weekly).
		Set("available_slots", pq.StringArray(slots)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrProviderNotFound
	}

	return r.GetProvider(ctx, kind, id)
}
