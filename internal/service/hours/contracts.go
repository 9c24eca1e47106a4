package hours

import (
	"context"
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
)

// HoursRepository интерфейс репозитория рабочих часов
type HoursRepository interface {
	ListByLocation(ctx context.Context, locationID string) ([]*domain.LocationDayHours, error)
	Upsert(ctx context.Context, row *domain.LocationDayHours) (*domain.LocationDayHours, error)
}

// DirectoryClient интерфейс клиента каталога локаций
type DirectoryClient interface {
	GetLocation(ctx context.Context, locationID string) (*locationdirectory.Location, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// weekdayOrder порядок дней недели в ответах: с понедельника по воскресенье
var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}
