package bookings

import (
	"context"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByLocationWithFilter(ctx context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
	Cancel(ctx context.Context, id string, status domain.BookingStatus, reason string) error
}

// DirectoryClient интерфейс клиента каталога локаций
type DirectoryClient interface {
	GetLocation(ctx context.Context, locationID string) (*locationdirectory.Location, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
