package get_availability

import (
	"context"
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByLocationWithFilter получает бронирования локации на дату
	GetByLocationWithFilter(ctx context.Context, filter domain.LocationBookingsFilter) ([]*domain.Booking, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	// ListActiveByLocation получает активных мастеров локации
	ListActiveByLocation(ctx context.Context, locationID string) ([]*domain.StaffMember, error)
}

// HoursRepository интерфейс репозитория рабочих часов
type HoursRepository interface {
	// GetByLocationAndWeekday получает конфигурацию часов локации на день недели
	GetByLocationAndWeekday(ctx context.Context, locationID string, weekday time.Weekday) (*domain.LocationDayHours, error)
}

// DirectoryClient интерфейс клиента каталога локаций
type DirectoryClient interface {
	GetLocation(ctx context.Context, locationID string) (*locationdirectory.Location, error)
	ListServices(ctx context.Context, locationID string) ([]*locationdirectory.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
