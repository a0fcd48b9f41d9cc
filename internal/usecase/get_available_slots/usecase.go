package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terapiemd/booking-service/internal/domain"
	scheduleRepo "github.com/terapiemd/booking-service/internal/infra/storage/schedule"
	"github.com/terapiemd/booking-service/pkg/types"
)

// UseCase computes free booking slots
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	logger       Logger
}

// NewUseCase creates a new use case instance
func NewUseCase(scheduleRepo ScheduleRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		logger:       logger,
	}
}

// Execute returns the base slots of the target for the date minus the claimed ones,
// keeping schedule order
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate request
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Resolve the profile and its base slots for the weekday
	resolved, err := uc.ResolveTarget(ctx, req.Target)
	if err != nil {
		return nil, err
	}

	base := uc.ResolveBaseSlots(resolved, req.Date)
	if len(base) == 0 {
		return &Response{Slots: []string{}}, nil
	}

	// 3. Drop slots held by non-cancelled bookings
	claimed, err := uc.bookingRepo.ListClaimedTimes(ctx, resolved.Target, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list claimed times for %s %s on %s: %v",
			resolved.Target.Kind, resolved.Target.ProviderID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list claimed times: %v", ErrInternal, err)
	}

	free := make([]string, 0, len(base))
	for _, slot := range base {
		if _, taken := claimed[slot]; !taken {
			free = append(free, slot)
		}
	}

	uc.logger.Info("GetAvailableSlots: %s %s on %s: %d/%d free",
		resolved.Target.Kind, resolved.Target.ProviderID, req.Date.Format(domain.DateFormat), len(free), len(base))

	return &Response{Slots: free}, nil
}

// ResolveTarget loads the records behind ref. An offer resolves to its owner;
// a direct id given together with an offer must be one of the offer's owners.
func (uc *UseCase) ResolveTarget(ctx context.Context, ref domain.TargetRef) (*domain.ResolvedTarget, error) {
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	direct, hasDirect := ref.Direct()

	if ref.OfferID == nil {
		provider, err := uc.scheduleRepo.GetProvider(ctx, direct.Kind, direct.ProviderID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrProviderNotFound) {
				uc.logger.Warn("ResolveTarget: %s %s not found", direct.Kind, direct.ProviderID)
				return nil, ErrProviderNotFound
			}
			uc.logger.Error("ResolveTarget: failed to get %s %s: %v", direct.Kind, direct.ProviderID, err)
			return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
		}
		return &domain.ResolvedTarget{Target: direct, Provider: provider}, nil
	}

	offer, err := uc.scheduleRepo.GetOffer(ctx, *ref.OfferID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrOfferNotFound) {
			uc.logger.Warn("ResolveTarget: offer %s not found", *ref.OfferID)
			return nil, ErrOfferNotFound
		}
		uc.logger.Error("ResolveTarget: failed to get offer %s: %v", *ref.OfferID, err)
		return nil, fmt.Errorf("%w: failed to get offer: %v", ErrInternal, err)
	}

	if hasDirect {
		if !offerBelongsTo(offer, direct) {
			uc.logger.Warn("ResolveTarget: offer %s does not belong to %s %s", offer.ID, direct.Kind, direct.ProviderID)
			return nil, fmt.Errorf("%w: offer does not belong to the given provider", ErrInvalidInput)
		}
		return &domain.ResolvedTarget{Target: direct, Offer: offer}, nil
	}

	owner, ok := offer.Owner()
	if !ok {
		uc.logger.Warn("ResolveTarget: offer %s has no owner", offer.ID)
		return nil, fmt.Errorf("%w: offer has no owner", ErrOfferNotFound)
	}

	return &domain.ResolvedTarget{Target: owner, Offer: offer}, nil
}

// ResolveBaseSlots returns the offerable HH:MM slots for the date in stored order.
// Offer availability overrides the provider schedule; an offer without an entry for the day
// is closed that day. A provider day entry wins over the flat default list, and an inactive
// entry closes the day.
func (uc *UseCase) ResolveBaseSlots(resolved *domain.ResolvedTarget, date time.Time) []string {
	day := domain.DayName(date)

	var raw []string
	switch {
	case resolved.Offer != nil:
		raw = resolved.Offer.Availability[day]
	case resolved.Provider != nil:
		if entry, ok := resolved.Provider.WeeklySchedule[day]; ok {
			if entry.Active {
				raw = entry.Slots
			}
		} else {
			raw = resolved.Provider.AvailableSlots
		}
	}

	slots := make([]string, 0, len(raw))
	for _, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			uc.logger.Warn("ResolveBaseSlots: skipping malformed slot %q of %s %s", s, resolved.Target.Kind, resolved.Target.ProviderID)
			continue
		}
		slots = append(slots, ts.String())
	}

	return slots
}
