package get_availability

import (
	"fmt"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LocationID == "" {
		return fmt.Errorf("%w: locationID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes > domain.MaxBookingDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must not exceed %d", ErrInvalidInput, domain.MaxBookingDurationMinutes)
	}

	for _, id := range req.ServiceIDs {
		if id == "" {
			return fmt.Errorf("%w: serviceIDs must not contain empty values", ErrInvalidInput)
		}
	}

	for _, id := range req.StaffIDs {
		if id == "" {
			return fmt.Errorf("%w: staffIDs must not contain empty values", ErrInvalidInput)
		}
	}

	return nil
}

// validateServicesExist проверяет, что все запрошенные услуги есть в каталоге локации
func validateServicesExist(catalog []*locationdirectory.Service, serviceIDs []string) error {
	known := make(map[string]struct{}, len(catalog))
	for _, svc := range catalog {
		known[svc.ID] = struct{}{}
	}

	for _, id := range serviceIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: service %s", ErrServiceNotFound, id)
		}
	}

	return nil
}
