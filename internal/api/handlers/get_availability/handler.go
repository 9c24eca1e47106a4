package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/klmnv/Salon-BookingService/internal/api/handlers"
	getAvailability "github.com/klmnv/Salon-BookingService/internal/usecase/get_availability"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration   = "некорректная длительность"
	msgInvalidInput      = "некорректные параметры запроса"
	msgLocationNotFound  = "локация не найдена"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/availability
// Query params: date (required, YYYY-MM-DD), durationMinutes (required),
// serviceIds (optional, csv), staffIds (optional, csv)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем locationId из URL
	locationID := vars["locationId"]
	if _, err := uuid.Parse(locationID); err != nil {
		h.logger.Warn("GET /locations/{id}/availability - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /locations/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем durationMinutes из query параметров
	durationStr := r.URL.Query().Get("durationMinutes")
	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil || durationMinutes <= 0 {
		h.logger.Warn("GET /locations/{id}/availability - Invalid duration: %q", durationStr)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(locationID, dateStr, durationMinutes,
		r.URL.Query().Get("serviceIds"), r.URL.Query().Get("staffIds"))
	if err != nil {
		h.logger.Warn("GET /locations/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailability.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/availability - Location not found: location_id=%s", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /locations/{id}/availability - Service not found: location_id=%s", locationID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /locations/{id}/availability - Invalid date: location_id=%s, date=%s", locationID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /locations/{id}/availability - Invalid input: location_id=%s, error=%v", locationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /locations/{id}/availability - Failed to get availability: location_id=%s, date=%s, error=%v",
				locationID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /locations/{id}/availability - Availability retrieved: location_id=%s, date=%s, slots_count=%d",
		locationID, dateStr, len(result.AvailableSlots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
