package schedule

import (
	"context"
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

var providerColumns = []string{"id", "user_id", "name", "weekly_schedule", "available_slots", "updated_at"}

func TestRepository_GetProvider(t *testing.T) {
	repo, mock := newMockRepository(t)
	id, userID := uuid.New(), uuid.New()
	updated := time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, company_name, weekly_schedule, available_slots, updated_at FROM business_profiles WHERE id = $1`)).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(providerColumns).AddRow(
			id.String(),
			userID.String(),
			"Zen Spa",
			[]byte(`{"monday":{"active":true,"slots":["09:00","10:00"]},"tuesday":null,"sunday":{"active":false,"slots":[]}}`),
			[]byte(`{14:00,15:00}`),
			updated,
		))

	provider, err := repo.GetProvider(context.Background(), domain.ProviderKindBusiness, id)
	require.NoError(t, err)

	assert.Equal(t, domain.ProviderKindBusiness, provider.Kind)
	assert.Equal(t, userID, provider.UserID)
	assert.Equal(t, "Zen Spa", provider.Name)
	assert.Equal(t, []string{"09:00", "10:00"}, provider.WeeklySchedule["monday"].Slots)
	assert.False(t, provider.WeeklySchedule["sunday"].Active)
	_, hasTuesday := provider.WeeklySchedule["tuesday"]
	assert.False(t, hasTuesday)
	assert.Equal(t, []string{"14:00", "15:00"}, provider.AvailableSlots)
	assert.Equal(t, updated, provider.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetProvider_NullColumns(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM therapist_profiles WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(providerColumns).AddRow(id.String(), uuid.New().String(), "Ana", nil, nil, time.Now()))

	provider, err := repo.GetProvider(context.Background(), domain.ProviderKindTherapist, id)
	require.NoError(t, err)
	assert.Nil(t, provider.WeeklySchedule)
	assert.Empty(t, provider.AvailableSlots)
}

func TestRepository_GetProvider_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM therapist_profiles WHERE user_id = $1`)).
		WillReturnRows(sqlmock.NewRows(providerColumns))

	_, err := repo.GetProviderByUserID(context.Background(), domain.ProviderKindTherapist, uuid.New())
	assert.ErrorIs(t, err, ErrProviderNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetProvider_UnknownKind(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.GetProvider(context.Background(), "clinic", uuid.New())
	assert.ErrorIs(t, err, ErrInvalidKind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetOffer(t *testing.T) {
	repo, mock := newMockRepository(t)
	id, businessID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, provider_id, business_id, title, availability FROM offers WHERE id = $1`)).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id", "business_id", "title", "availability"}).AddRow(
			id.String(), nil, businessID.String(), "Deep tissue", []byte(`{"friday":["16:00"],"saturday":null}`),
		))

	offer, err := repo.GetOffer(context.Background(), id)
	require.NoError(t, err)

	assert.Nil(t, offer.ProviderID)
	require.NotNil(t, offer.BusinessID)
	assert.Equal(t, businessID, *offer.BusinessID)
	assert.Equal(t, domain.OfferAvailability{"friday": {"16:00"}}, offer.Availability)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateSchedule(t *testing.T) {
	repo, mock := newMockRepository(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE therapist_profiles SET weekly_schedule = $1, available_slots = $2, updated_at = NOW() WHERE id = $3`)).
		WithArgs(sqlmock.AnyArg(), "{}", id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM therapist_profiles WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(providerColumns).AddRow(
			id.String(), uuid.New().String(), "Ana", []byte(`{"monday":{"active":true,"slots":["09:00"]}}`), []byte(`{}`), time.Now(),
		))

	provider, err := repo.UpdateSchedule(context.Background(), domain.ProviderKindTherapist, id,
		domain.WeeklySchedule{"monday": {Active: true, Slots: []string{"09:00"}}}, nil)
	require.NoError(t, err)
	assert.True(t, provider.WeeklySchedule["monday"].Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateSchedule_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE business_profiles`)).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateSchedule(context.Background(), domain.ProviderKindBusiness, uuid.New(), domain.WeeklySchedule{}, []string{"09:00"})
	assert.ErrorIs(t, err, ErrProviderNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
