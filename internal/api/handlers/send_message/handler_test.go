package send_message

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/terapiemd/booking-service/internal/api/middleware"
	"github.com/terapiemd/booking-service/internal/domain"
	sendMessage "github.com/terapiemd/booking-service/internal/usecase/send_message"
	"github.com/terapiemd/booking-service/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *sendMessage.Request) (*sendMessage.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*sendMessage.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func send(h *Handler, bookingID, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID.String()+"/messages", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID.String()})
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, logger.NewNop())
	bookingID, userID := uuid.New(), uuid.New()

	stored := &domain.Message{
		ID:        uuid.New(),
		BookingID: bookingID,
		SenderID:  userID,
		Content:   "Is parking available?",
		CreatedAt: time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
	}
	uc.On("Execute", mock.Anything, &sendMessage.Request{
		SenderID:  userID,
		BookingID: bookingID,
		Content:   "Is parking available?",
	}).Return(&sendMessage.Response{Message: stored}, nil).Once()

	rec := send(h, bookingID, userID, `{"content":"Is parking available?"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp SendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, stored.ID, resp.Message.ID)
	assert.Equal(t, "Is parking available?", resp.Message.Content)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "blank", err: sendMessage.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", err: sendMessage.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "outsider", err: sendMessage.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "internal", err: sendMessage.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err).Once()
			h := NewHandler(uc, logger.NewNop())

			rec := send(h, uuid.New(), uuid.New(), `{"content":"   "}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}

func TestHandle_MissingContent(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, logger.NewNop())

	rec := send(h, uuid.New(), uuid.New(), `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
