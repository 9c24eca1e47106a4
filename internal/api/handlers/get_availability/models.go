package get_availability

import (
	"strings"
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	getAvailability "github.com/klmnv/Salon-BookingService/internal/usecase/get_availability"
)

// LocationHours рабочие часы локации в HTTP ответе
type LocationHours struct {
	Open  string `json:"open"`  // "09:00"
	Close string `json:"close"` // "19:00"
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date           string        `json:"date"`
	LocationID     string        `json:"locationId"`
	AvailableSlots []string      `json:"availableSlots"` // "9:00 AM", "9:30 AM", ...
	BestFitSlots   []string      `json:"bestFitSlots"`
	LocationHours  LocationHours `json:"locationHours"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	available := make([]string, len(resp.AvailableSlots))
	for i, slot := range resp.AvailableSlots {
		available[i] = slot.String()
	}

	bestFit := make([]string, len(resp.BestFitSlots))
	for i, slot := range resp.BestFitSlots {
		bestFit[i] = slot.String()
	}

	hours := LocationHours{}
	if resp.Hours.IsOpen {
		hours.Open = resp.Hours.Open.Military()
		hours.Close = resp.Hours.Close.Military()
	}

	return &AvailabilityResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		LocationID:     resp.LocationID,
		AvailableSlots: available,
		BestFitSlots:   bestFit,
		LocationHours:  hours,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(locationID, dateStr string, durationMinutes int, serviceIDs, staffIDs string) (*getAvailability.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		LocationID:      locationID,
		Date:            date,
		DurationMinutes: durationMinutes,
		ServiceIDs:      splitIDs(serviceIDs),
		StaffIDs:        splitIDs(staffIDs),
	}, nil
}

// splitIDs разбирает список ID через запятую, пустые элементы отбрасываются
func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}

	if len(ids) == 0 {
		return nil
	}
	return ids
}
