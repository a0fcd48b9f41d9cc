package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/terapiemd/booking-service/internal/api/middleware"
	updateStatus "github.com/terapiemd/booking-service/internal/usecase/update_booking_status"
	"github.com/terapiemd/booking-service/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Cancel(ctx context.Context, actorID, bookingID uuid.UUID, reason *string) (*updateStatus.Response, error) {
	args := m.Called(ctx, actorID, bookingID, reason)
	if resp, ok := args.Get(0).(*updateStatus.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func cancel(h *Handler, bookingID, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID.String()+"/cancel", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID.String()})
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_EmptyBodyCancelsWithoutReason(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, logger.NewNop())
	bookingID, userID := uuid.New(), uuid.New()

	uc.On("Cancel", mock.Anything, userID, bookingID, (*string)(nil)).Return(&updateStatus.Response{}, nil).Once()

	rec := cancel(h, bookingID, userID, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestHandle_WithReason(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, logger.NewNop())
	bookingID, userID := uuid.New(), uuid.New()

	uc.On("Cancel", mock.Anything, userID, bookingID, mock.MatchedBy(func(reason *string) bool {
		return reason != nil && *reason == "feeling better"
	})).Return(&updateStatus.Response{}, nil).Once()

	rec := cancel(h, bookingID, userID, `{"reason":"feeling better"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_AlreadyCancelled(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, logger.NewNop())
	bookingID, userID := uuid.New(), uuid.New()

	uc.On("Cancel", mock.Anything, userID, bookingID, (*string)(nil)).
		Return(nil, updateStatus.ErrInvalidTransition).Once()

	rec := cancel(h, bookingID, userID, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), msgCannotCancel)
}
