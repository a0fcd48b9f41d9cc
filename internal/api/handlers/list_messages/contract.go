package list_messages

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/service/bookings/models"
)

type MessageService interface {
	ListMessages(ctx context.Context, bookingID, userID uuid.UUID) (*models.MessageListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
