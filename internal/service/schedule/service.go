package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/terapiemd/booking-service/internal/domain"
	scheduleRepo "github.com/terapiemd/booking-service/internal/infra/storage/schedule"
	"github.com/terapiemd/booking-service/internal/service/schedule/models"
	"github.com/terapiemd/booking-service/pkg/types"
)

// Service serves and updates provider weekly schedules
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService creates a new schedule service
func NewService(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule returns the public schedule of a profile
func (s *Service) GetSchedule(ctx context.Context, kind domain.ProviderKind, providerID uuid.UUID) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule of %s %s", kind, providerID)

	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown provider kind %q", ErrInvalidInput, kind)
	}

	provider, err := s.scheduleRepo.GetProvider(ctx, kind, providerID)
	if err != nil {
		return nil, s.mapRepoError("GetSchedule", kind, providerID, err)
	}

	return models.FromDomainProvider(provider), nil
}

// UpdateSchedule replaces the weekly schedule and default slots. Only the owning account may
// write. Slots are normalized to HH:MM, deduplicated and sorted on the way in.
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: %s %s by user=%s", req.Kind, req.ProviderID, req.UserID)

	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown provider kind %q", ErrInvalidInput, req.Kind)
	}

	weekly, defaults, err := normalizeSchedule(req.WeeklySchedule, req.AvailableSlots)
	if err != nil {
		s.logger.Warn("UpdateSchedule: validation failed: %v", err)
		return nil, err
	}

	var updated *domain.Provider
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		provider, err := s.scheduleRepo.GetProvider(txCtx, req.Kind, req.ProviderID)
		if err != nil {
			return s.mapRepoError("UpdateSchedule", req.Kind, req.ProviderID, err)
		}

		if provider.UserID != req.UserID {
			s.logger.Warn("UpdateSchedule: user=%s does not own %s %s", req.UserID, req.Kind, req.ProviderID)
			return ErrAccessDenied
		}

		updated, err = s.scheduleRepo.UpdateSchedule(txCtx, req.Kind, req.ProviderID, weekly, defaults)
		if err != nil {
			return s.mapRepoError("UpdateSchedule", req.Kind, req.ProviderID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSchedule: successfully updated %s %s", req.Kind, req.ProviderID)
	return models.FromDomainProvider(updated), nil
}

func (s *Service) mapRepoError(op string, kind domain.ProviderKind, id uuid.UUID, err error) error {
	if errors.Is(err, scheduleRepo.ErrProviderNotFound) {
		s.logger.Warn("%s: %s %s not found", op, kind, id)
		return ErrProviderNotFound
	}
	s.logger.Error("%s: repository error for %s %s: %v", op, kind, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func normalizeSchedule(in map[string]models.DaySchedule, defaults []string) (domain.WeeklySchedule, []string, error) {
	weekly := make(domain.WeeklySchedule, len(in))
	for day, sched := range in {
		name := strings.ToLower(strings.TrimSpace(day))
		if !domain.IsDayName(name) {
			return nil, nil, fmt.Errorf("%w: unknown day %q", ErrInvalidInput, day)
		}
		if _, dup := weekly[name]; dup {
			return nil, nil, fmt.Errorf("%w: day %q given twice", ErrInvalidInput, name)
		}

		slots, err := normalizeSlots(sched.Slots)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", err, name)
		}
		weekly[name] = domain.DaySchedule{Active: sched.Active, Slots: slots}
	}

	slots, err := normalizeSlots(defaults)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: available slots", err)
	}

	return weekly, slots, nil
}

func normalizeSlots(in []string) ([]string, error) {
	if len(in) > domain.MaxSlotsPerDay {
		return nil, fmt.Errorf("%w: more than %d slots", ErrInvalidInput, domain.MaxSlotsPerDay)
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		ts, err := types.NewTimeStringFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: slot %q", ErrInvalidInput, raw)
		}
		slot := ts.String()
		if _, dup := seen[slot]; dup {
			continue
		}
		seen[slot] = struct{}{}
		out = append(out, slot)
	}

	sort.Strings(out)
	return out, nil
}
