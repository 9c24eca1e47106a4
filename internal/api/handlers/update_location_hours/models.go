package update_location_hours

import (
	"github.com/klmnv/Salon-BookingService/internal/service/hours/models"
)

// UpdateHoursRequest HTTP request model
type UpdateHoursRequest struct {
	Days []models.DayHoursInput `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *UpdateHoursRequest) ToServiceRequest(locationID, actorID string) *models.UpdateWeekRequest {
	return &models.UpdateWeekRequest{
		ActorID:    actorID,
		LocationID: locationID,
		Days:       r.Days,
	}
}
