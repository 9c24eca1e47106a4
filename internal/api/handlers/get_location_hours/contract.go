package get_location_hours

import (
	"context"

	"github.com/klmnv/Salon-BookingService/internal/service/hours/models"
)

type HoursService interface {
	GetWeek(ctx context.Context, locationID string) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
