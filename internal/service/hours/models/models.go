package models

import (
	"errors"
	"strings"
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/pkg/types"
)

var (
	// ErrInvalidWeekday возвращается при некорректном дне недели
	ErrInvalidWeekday = errors.New("invalid weekday")
	// ErrInvalidTime возвращается при некорректном времени
	ErrInvalidTime = errors.New("invalid time")
	// ErrOpenAfterClose возвращается, когда открытие не раньше закрытия
	ErrOpenAfterClose = errors.New("open time must be before close time")
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Request модели

// DayHoursInput часы одного дня недели в запросе на обновление.
// Время в 24-часовом формате "HH:MM". Для закрытого дня open/close не нужны.
type DayHoursInput struct {
	Weekday string `json:"weekday"`
	IsOpen  bool   `json:"isOpen"`
	Open    string `json:"open,omitempty"`
	Close   string `json:"close,omitempty"`
}

// UpdateWeekRequest запрос на обновление расписания локации
type UpdateWeekRequest struct {
	ActorID    string          `json:"actorId"`
	LocationID string          `json:"locationId"`
	Days       []DayHoursInput `json:"days"`
}

// ToDomainRow конвертирует входные данные одного дня в domain модель
func (d *DayHoursInput) ToDomainRow(locationID string) (*domain.LocationDayHours, error) {
	weekday, ok := weekdayNames[strings.ToLower(d.Weekday)]
	if !ok {
		return nil, ErrInvalidWeekday
	}

	row := &domain.LocationDayHours{
		LocationID: locationID,
		Weekday:    weekday,
		IsOpen:     d.IsOpen,
	}

	if !d.IsOpen {
		return row, nil
	}

	open, err := types.ParseMilitary(d.Open)
	if err != nil {
		return nil, ErrInvalidTime
	}
	close, err := types.ParseMilitary(d.Close)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if !open.Before(close) {
		return nil, ErrOpenAfterClose
	}

	row.Open = open
	row.Close = close
	return row, nil
}

// Response модели

// DayHoursResponse часы одного дня недели
type DayHoursResponse struct {
	Weekday   string `json:"weekday"`
	IsOpen    bool   `json:"isOpen"`
	Open      string `json:"open,omitempty"`  // "09:00"
	Close     string `json:"close,omitempty"` // "19:00"
	IsDefault bool   `json:"isDefault"`       // Часы не настроены, действует дефолт
}

// WeekResponse недельное расписание локации
type WeekResponse struct {
	LocationID string             `json:"locationId"`
	Days       []DayHoursResponse `json:"days"`
}

// FromDayHours конвертирует часы дня в DTO
func FromDayHours(weekday time.Weekday, hours domain.DayHours, isDefault bool) DayHoursResponse {
	resp := DayHoursResponse{
		Weekday:   strings.ToLower(weekday.String()),
		IsOpen:    hours.IsOpen,
		IsDefault: isDefault,
	}
	if hours.IsOpen {
		resp.Open = hours.Open.Military()
		resp.Close = hours.Close.Military()
	}
	return resp
}
