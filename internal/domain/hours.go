package domain

import (
	"time"

	"github.com/klmnv/Salon-BookingService/pkg/types"
)

// DayHours represents the opening hours of a location for one weekday
type DayHours struct {
	IsOpen bool
	Open   types.TimeOfDay
	Close  types.TimeOfDay
}

// Defaults applied when a location has no configured hours for a weekday:
// weekdays 09:00-19:00, weekends 10:00-18:00.
var (
	defaultWeekdayHours = DayHours{
		IsOpen: true,
		Open:   types.TimeOfDay(9 * 60),
		Close:  types.TimeOfDay(19 * 60),
	}
	defaultWeekendHours = DayHours{
		IsOpen: true,
		Open:   types.TimeOfDay(10 * 60),
		Close:  types.TimeOfDay(18 * 60),
	}
)

// IsWeekend reports whether the weekday is Saturday or Sunday
func IsWeekend(weekday time.Weekday) bool {
	return weekday == time.Saturday || weekday == time.Sunday
}

// DefaultHoursFor returns the fallback opening hours for a weekday
func DefaultHoursFor(weekday time.Weekday) DayHours {
	if IsWeekend(weekday) {
		return defaultWeekendHours
	}
	return defaultWeekdayHours
}

// LocationDayHours одна строка конфигурации рабочих часов локации
type LocationDayHours struct {
	ID         int64
	LocationID string
	Weekday    time.Weekday
	IsOpen     bool
	Open       types.TimeOfDay
	Close      types.TimeOfDay
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DayHours converts the configuration row to the policy value
func (h *LocationDayHours) DayHours() DayHours {
	return DayHours{IsOpen: h.IsOpen, Open: h.Open, Close: h.Close}
}
