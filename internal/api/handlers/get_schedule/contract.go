package get_schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, kind domain.ProviderKind, providerID uuid.UUID) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
