package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/infra/storage/memory"
	getAvailableSlots "github.com/terapiemd/booking-service/internal/usecase/get_available_slots"
	"github.com/terapiemd/booking-service/pkg/logger"
	"github.com/terapiemd/booking-service/pkg/types"
)

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	log := logger.NewNop()
	provider := store.AddProvider(domain.Provider{
		Kind:           domain.ProviderKindTherapist,
		Name:           "Ana Popescu",
		WeeklySchedule: domain.WeeklySchedule{"tuesday": {Active: true, Slots: []string{"09:00", "10:00"}}},
	})

	therapistID := provider.ID
	_, err := store.Bookings().Create(context.Background(), &domain.Booking{
		ClientID:    uuid.New(),
		TherapistID: &therapistID,
		Date:        time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC),
		Time:        types.TimeString("10:00"),
		Status:      domain.StatusPending,
	})
	require.NoError(t, err)

	h := NewHandler(getAvailableSlots.NewUseCase(store.Schedules(), store.Bookings(), log), log)

	get := func(query string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil))
		return rec
	}

	t.Run("booked slot is hidden", func(t *testing.T) {
		rec := get("providerId=" + provider.ID.String() + "&date=2025-12-02")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AvailableSlotsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"09:00"}, resp.Slots)
	})

	t.Run("day without slots gives an empty list", func(t *testing.T) {
		rec := get("providerId=" + provider.ID.String() + "&date=2025-12-03")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"slots":[]}`, rec.Body.String())
	})

	t.Run("missing date", func(t *testing.T) {
		rec := get("providerId=" + provider.ID.String())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := get("providerId=42&date=2025-12-02")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown provider", func(t *testing.T) {
		rec := get("providerId=" + uuid.NewString() + "&date=2025-12-02")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
