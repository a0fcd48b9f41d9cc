package update_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/terapiemd/booking-service/internal/api/handlers"
	"github.com/terapiemd/booking-service/internal/api/middleware"
	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/service/schedule"
)

const (
	msgInvalidProviderID  = "invalid provider id"
	msgInvalidKind        = "provider kind must be therapist or business"
	msgInvalidRequestBody = "invalid request body"
	msgMissingUserID      = "authentication required"
	msgInvalidSchedule    = "invalid schedule: check day names and HH:MM slots"
	msgNotFound           = "provider not found"
	msgForbidden          = "only the profile owner can change its schedule"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{kind}/{providerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind := domain.ProviderKind(mux.Vars(r)["kind"])
	if !kind.IsValid() {
		h.logger.Warn("PUT /providers/{kind}/{id}/schedule - Invalid kind: %s", kind)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("PUT /providers/{kind}/{id}/schedule - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/{kind}/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /providers/{kind}/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), req.ToServiceRequest(userID, kind, providerID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{kind}/{id}/schedule - %v", err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, schedule.ErrProviderNotFound):
			h.logger.Warn("PUT /providers/{kind}/{id}/schedule - Not found: %s %s", kind, providerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /providers/{kind}/{id}/schedule - Access denied: %s %s, user_id=%s",
				kind, providerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /providers/{kind}/{id}/schedule - Failed to update schedule: %s %s, error=%v",
				kind, providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{kind}/{id}/schedule - Schedule updated: %s %s, user_id=%s",
		kind, providerID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
