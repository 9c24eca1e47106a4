package get_location_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/klmnv/Salon-BookingService/internal/api/handlers"
	"github.com/klmnv/Salon-BookingService/internal/api/middleware"
	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/internal/service/bookings"
	"github.com/klmnv/Salon-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgInvalidStaffID    = "некорректный ID мастера"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput      = "некорректные параметры запроса"
	msgUnauthorized      = "требуется авторизация"
	msgLocationNotFound  = "локация не найдена"
	msgAccessDenied      = "доступ запрещен"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/bookings
// Query params: date, staffId, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /locations/{id}/bookings - Missing customer ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	locationID := mux.Vars(r)["locationId"]
	if _, err := uuid.Parse(locationID); err != nil {
		h.logger.Warn("GET /locations/{id}/bookings - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	req := &models.GetLocationBookingsRequest{
		ActorID:    actorID,
		LocationID: locationID,
	}

	query := r.URL.Query()

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /locations/{id}/bookings - Invalid date: %q", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if staffID := query.Get("staffId"); staffID != "" {
		if _, err := uuid.Parse(staffID); err != nil {
			h.logger.Warn("GET /locations/{id}/bookings - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if includeInactive := query.Get("includeInactive"); includeInactive != "" {
		value, err := strconv.ParseBool(includeInactive)
		if err != nil {
			h.logger.Warn("GET /locations/{id}/bookings - Invalid includeInactive: %q", includeInactive)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		req.IncludeInactive = value
	}

	result, err := h.service.GetLocationBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/bookings - Location not found: location_id=%s", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /locations/{id}/bookings - Access denied: location_id=%s, actor_id=%s", locationID, actorID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/bookings - Invalid filter: location_id=%s, error=%v", locationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /locations/{id}/bookings - Failed to get bookings: location_id=%s, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/bookings - Retrieved %d bookings: location_id=%s, actor_id=%s",
		len(result.Bookings), locationID, actorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
