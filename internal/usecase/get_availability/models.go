package get_availability

import (
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/pkg/types"
)

// Request модель запроса на расчет доступности
type Request struct {
	LocationID      string          // ID локации
	Date            time.Time       // Дата (без времени)
	DurationMinutes int             // Суммарная длительность выбранных услуг
	ServiceIDs      []string        // Выбранные услуги (опционально, влияет на квалификацию мастеров)
	StaffIDs        []string        // Явно выбранные мастера (опционально, сужает поиск)
}

// Response модель ответа с доступными слотами.
// Результат - снимок на момент чтения: одновременная отправка двух бронирований
// на один слот разрешается не здесь, а serializable-транзакцией записи.
type Response struct {
	Date           time.Time         // Дата, на которую запрашивалась доступность
	LocationID     string            // ID локации
	AvailableSlots []types.TimeOfDay // Доступные времена начала, в хронологическом порядке
	BestFitSlots   []types.TimeOfDay // Рекомендованные слоты (подмножество AvailableSlots, максимум 3)
	Hours          domain.DayHours   // Рабочие часы локации в этот день
}

// emptyResponse ответ без слотов (локация закрыта, нет мастеров и т.п.)
func emptyResponse(req *Request, hours domain.DayHours) *Response {
	return &Response{
		Date:           req.Date,
		LocationID:     req.LocationID,
		AvailableSlots: []types.TimeOfDay{},
		BestFitSlots:   []types.TimeOfDay{},
		Hours:          hours,
	}
}
