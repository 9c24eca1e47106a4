package domain

import "github.com/klmnv/Salon-BookingService/pkg/types"

// Slot grid configuration
const (
	// SlotGridStepMinutes шаг сетки слотов
	SlotGridStepMinutes = 30

	// MaxBestFitSlots максимальное количество рекомендованных слотов
	MaxBestFitSlots = 3
)

// Business validation constants
const (
	MinBookingDurationMinutes = 15
	MaxBookingDurationMinutes = 480 // 8 часов
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
	MaxServicesPerBooking     = 10
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// PreferredSlotTimes фиксированный список предпочтительных времен для
// рекомендаций: середина утра, начало и конец дневного окна.
// Пересекается с доступными слотами, первые MaxBestFitSlots попадают в ответ.
var PreferredSlotTimes = []types.TimeOfDay{
	types.TimeOfDay(10 * 60),      // 10:00 AM
	types.TimeOfDay(10*60 + 30),   // 10:30 AM
	types.TimeOfDay(13 * 60),      // 1:00 PM
	types.TimeOfDay(13*60 + 30),   // 1:30 PM
	types.TimeOfDay(15 * 60),      // 3:00 PM
	types.TimeOfDay(15*60 + 30),   // 3:30 PM
}

// InactiveStatuses статусы бронирований, не занимающие время мастеров.
// Используются для фильтрации при расчете доступности.
var InactiveStatuses = []BookingStatus{
	StatusCancelledByCustomer,
	StatusCancelledBySalon,
	StatusNoShow,
}

// ActiveStatuses статусы бронирований, занимающих время мастеров
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
