package get_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/terapiemd/booking-service/internal/api/handlers"
	"github.com/terapiemd/booking-service/internal/domain"
	"github.com/terapiemd/booking-service/internal/service/schedule"
)

const (
	msgInvalidProviderID = "invalid provider id"
	msgInvalidKind       = "provider kind must be therapist or business"
	msgNotFound          = "provider not found"
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

// Handle GET /api/v1/providers/{kind}/{providerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	kind := domain.ProviderKind(mux.Vars(r)["kind"])
	if !kind.IsValid() {
		h.logger.Warn("GET /providers/{kind}/{id}/schedule - Invalid kind: %s", kind)
		handlers.RespondBadRequest(w, msgInvalidKind)
		return
	}

	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{kind}/{id}/schedule - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), kind, providerID)
	if err != nil {
		if errors.Is(err, schedule.ErrProviderNotFound) {
			h.logger.Warn("GET /providers/{kind}/{id}/schedule - Not found: %s %s", kind, providerID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /providers/{kind}/{id}/schedule - Failed to get schedule: %s %s, error=%v",
			kind, providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{kind}/{id}/schedule - Schedule retrieved: %s %s", kind, providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
