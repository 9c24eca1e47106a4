package create_booking

import (
	"fmt"
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID == "" {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}

	if req.LocationID == "" {
		return fmt.Errorf("%w: locationID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if req.StartTime.Minutes()%domain.SlotGridStepMinutes != 0 {
		return fmt.Errorf("%w: startTime must be on the %d-minute grid", ErrInvalidTime, domain.SlotGridStepMinutes)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.ServiceID == "" {
			return fmt.Errorf("%w: serviceID is required for every item", ErrInvalidInput)
		}
		if _, ok := seen[item.ServiceID]; ok {
			return fmt.Errorf("%w: duplicate service %s", ErrInvalidInput, item.ServiceID)
		}
		seen[item.ServiceID] = struct{}{}

		if item.StaffID != nil && *item.StaffID == "" {
			return fmt.Errorf("%w: staffID must not be empty when provided", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDuration проверяет суммарную длительность бронирования
func validateDuration(durationMinutes int) error {
	if durationMinutes < domain.MinBookingDurationMinutes {
		return fmt.Errorf("%w: total duration %d is below the minimum of %d minutes",
			ErrInvalidInput, durationMinutes, domain.MinBookingDurationMinutes)
	}
	if durationMinutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: total duration %d exceeds the maximum of %d minutes",
			ErrInvalidInput, durationMinutes, domain.MaxBookingDurationMinutes)
	}
	return nil
}

// validateWithinHours проверяет, что интервал бронирования целиком лежит
// внутри рабочих часов дня
func validateWithinHours(hours domain.DayHours, start types.TimeOfDay, durationMinutes int) error {
	if !hours.IsOpen {
		return ErrLocationClosed
	}
	if start.Minutes() < hours.Open.Minutes() {
		return fmt.Errorf("%w: booking starts before opening time %s", ErrLocationClosed, hours.Open.Military())
	}
	if start.Minutes()+durationMinutes > hours.Close.Minutes() {
		return fmt.Errorf("%w: booking ends after closing time %s", ErrLocationClosed, hours.Close.Military())
	}
	return nil
}

// validateStartNotPassed проверяет, что время начала еще не прошло,
// если бронирование делается на сегодня
func validateStartNotPassed(date time.Time, start types.TimeOfDay, now time.Time) error {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return nil
	}

	currentMinutes := now.Hour()*60 + now.Minute()
	if start.Minutes() < currentMinutes {
		return fmt.Errorf("%w: start time %s has already passed", ErrInvalidTime, start)
	}
	return nil
}
