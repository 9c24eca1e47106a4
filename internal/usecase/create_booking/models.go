package create_booking

import (
	"time"

	"github.com/klmnv/Salon-BookingService/pkg/types"
)

// Item одна услуга в составе бронирования
type Item struct {
	ServiceID string  // ID услуги
	StaffID   *string // Явно выбранный мастер (опционально)
}

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID string          // ID клиента (из авторизации)
	LocationID string          // ID локации
	Date       time.Time       // Дата бронирования
	StartTime  types.TimeOfDay // Время начала (на 30-минутной сетке)
	Items      []Item          // Услуги в составе бронирования
	Notes      *string         // Заметки клиента (опционально)
}

// ResponseAssignment назначение мастера на услугу в ответе
type ResponseAssignment struct {
	StaffID   string
	ServiceID string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              string
	CustomerID      string
	LocationID      string
	BookingDate     time.Time
	StartTime       types.TimeOfDay
	DurationMinutes int
	Status          string
	Assignments     []ResponseAssignment
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
