package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
)

// ScheduleRepository reads and replaces provider schedules
type ScheduleRepository interface {
	GetProvider(ctx context.Context, kind domain.ProviderKind, id uuid.UUID) (*domain.Provider, error)
	UpdateSchedule(ctx context.Context, kind domain.ProviderKind, id uuid.UUID, weekly domain.WeeklySchedule, slots []string) (*domain.Provider, error)
}

// TransactionManager runs fn in a transaction
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger interface
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
