package create_booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/klmnv/Salon-BookingService/internal/api/handlers"
	"github.com/klmnv/Salon-BookingService/internal/api/middleware"
	createBooking "github.com/klmnv/Salon-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidBody      = "некорректное тело запроса"
	msgInvalidDateTime  = "некорректная дата или время"
	msgInvalidInput     = "некорректные параметры запроса"
	msgUnauthorized     = "требуется авторизация"
	msgLocationNotFound = "локация не найдена"
	msgServiceNotFound  = "услуга не найдена"
	msgStaffNotEligible = "мастер не оказывает выбранную услугу"
	msgLocationClosed   = "локация закрыта в выбранное время"
	msgSlotTaken        = "выбранное время уже занято"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// ID клиента проставляется auth middleware
	customerID, ok := middleware.CustomerIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing customer ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Декодируем тело запроса
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	// Формируем запрос к use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrLocationNotFound):
			h.logger.Warn("POST /bookings - Location not found: location_id=%s", req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: location_id=%s", req.LocationID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrStaffNotEligible):
			h.logger.Warn("POST /bookings - Staff not eligible: location_id=%s, error=%v", req.LocationID, err)
			handlers.RespondBadRequest(w, msgStaffNotEligible)

		case errors.Is(err, createBooking.ErrLocationClosed):
			h.logger.Warn("POST /bookings - Location closed: location_id=%s, date=%s", req.LocationID, req.Date)
			handlers.RespondBadRequest(w, msgLocationClosed)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: location_id=%s, date=%s, time=%s",
				req.LocationID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrInvalidDate), errors.Is(err, createBooking.ErrInvalidTime):
			h.logger.Warn("POST /bookings - Invalid date or time: location_id=%s, error=%v", req.LocationID, err)
			handlers.RespondBadRequest(w, msgInvalidDateTime)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: location_id=%s, error=%v", req.LocationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%s, location_id=%s, error=%v",
				customerID, req.LocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: id=%s, customer_id=%s, location_id=%s",
		result.ID, customerID, req.LocationID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
