package domain

import (
	"time"

	"github.com/klmnv/Salon-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusInProgress          BookingStatus = "in_progress"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	StatusCancelledBySalon    BookingStatus = "cancelled_by_salon"
	StatusNoShow              BookingStatus = "no_show"
)

// StaffAssignment binds one service inside a booking to the staff member
// performing it. Every assignment occupies the staff member for the whole
// booking interval, not just the service's own share of it.
type StaffAssignment struct {
	StaffID   string
	ServiceID string
}

// Booking represents a confirmed or pending appointment at a salon location
type Booking struct {
	ID              string
	CustomerID      string
	LocationID      string
	BookingDate     time.Time
	StartTime       types.TimeOfDay
	DurationMinutes int
	Status          BookingStatus
	Assignments     []StaffAssignment

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its staff members' time
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByCustomer &&
		b.Status != StatusCancelledBySalon &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled by either side
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCustomer || b.Status == StatusCancelledBySalon
}

// Interval returns the time span the booking occupies
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, DurationMinutes: b.DurationMinutes}
}

// InvolvesStaff reports whether the staff member participates in the booking
func (b *Booking) InvolvesStaff(staffID string) bool {
	for _, a := range b.Assignments {
		if a.StaffID == staffID {
			return true
		}
	}
	return false
}

// LocationBookingsFilter фильтр для выборки бронирований локации
type LocationBookingsFilter struct {
	LocationID      string         // Обязательный параметр
	Date            *time.Time     // Фильтр по дате (опционально)
	StaffID         *string        // Фильтр по мастеру (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show бронирования
}
