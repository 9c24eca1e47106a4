package update_location_hours

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/klmnv/Salon-BookingService/internal/api/handlers"
	"github.com/klmnv/Salon-BookingService/internal/api/middleware"
	"github.com/klmnv/Salon-BookingService/internal/service/hours"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidInput      = "некорректное расписание"
	msgUnauthorized      = "требуется авторизация"
	msgLocationNotFound  = "локация не найдена"
	msgAccessDenied      = "доступ запрещен"
)

type Handler struct {
	service HoursService
	logger  Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/locations/{locationId}/hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /locations/{id}/hours - Missing customer ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	locationID := mux.Vars(r)["locationId"]
	if _, err := uuid.Parse(locationID); err != nil {
		h.logger.Warn("PUT /locations/{id}/hours - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	var req UpdateHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("PUT /locations/{id}/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.UpdateWeek(r.Context(), req.ToServiceRequest(locationID, actorID))
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrLocationNotFound):
			h.logger.Warn("PUT /locations/{id}/hours - Location not found: location_id=%s", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, hours.ErrAccessDenied):
			h.logger.Warn("PUT /locations/{id}/hours - Access denied: location_id=%s, actor_id=%s", locationID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, hours.ErrInvalidInput):
			h.logger.Warn("PUT /locations/{id}/hours - Invalid schedule: location_id=%s, error=%v", locationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /locations/{id}/hours - Failed to update hours: location_id=%s, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /locations/{id}/hours - Hours updated: location_id=%s, actor_id=%s", locationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
