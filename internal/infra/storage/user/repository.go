package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/pkg/dbmetrics"
	"github.com/terapiemd/booking-service/pkg/psqlbuilder"
)

// Repository reads the public users table mirrored from the auth provider
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a user repository
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetNotificationPreferences returns the notification switches of an account
func (r *Repository) GetNotificationPreferences(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreferences, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("notification_preferences").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetNotificationPreferences - build select query: %v", ErrBuildQuery, err)
	}

	var prefs domain.NotificationPreferences
	err = executor.QueryRowContext(ctx, query, args...).Scan(&prefs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetNotificationPreferences - scan row: %v", ErrScanRow, err)
	}

	return &prefs, nil
}
