package domain

import "github.com/klmnv/Salon-BookingService/pkg/types"

// Interval is a contiguous span of time within one day: a start and a
// duration in minutes. Intervals are half-open: [start, start+duration).
type Interval struct {
	Start           types.TimeOfDay
	DurationMinutes int
}

// EndMinutes returns the exclusive end of the interval in minutes since
// midnight. May equal types.MinutesPerDay for an interval ending at midnight.
func (i Interval) EndMinutes() int {
	return i.Start.Minutes() + i.DurationMinutes
}

// Overlaps reports whether two half-open intervals truly intersect.
// Touching boundaries do not count: [9:30, 10:00) and [10:00, 10:30)
// do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Minutes() < other.EndMinutes() && other.Start.Minutes() < i.EndMinutes()
}

// StaffSchedule индекс занятости мастеров: staffID -> интервалы активных бронирований.
// Каждое назначение внутри бронирования занимает мастера на весь интервал бронирования.
type StaffSchedule map[string][]Interval

// BuildStaffSchedule строит индекс занятости по списку бронирований дня.
// Неактивные бронирования (отмененные, no-show) не занимают время.
func BuildStaffSchedule(bookings []*Booking) StaffSchedule {
	schedule := make(StaffSchedule)

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		interval := booking.Interval()
		seen := make(map[string]struct{}, len(booking.Assignments))

		for _, assignment := range booking.Assignments {
			// Мастер может выполнять несколько услуг в одном бронировании -
			// интервал учитываем один раз
			if _, ok := seen[assignment.StaffID]; ok {
				continue
			}
			seen[assignment.StaffID] = struct{}{}
			schedule[assignment.StaffID] = append(schedule[assignment.StaffID], interval)
		}
	}

	return schedule
}

// IsStaffFree reports whether the staff member has no booking overlapping
// the candidate interval. A member absent from the schedule is trivially free.
func (s StaffSchedule) IsStaffFree(staffID string, candidate Interval) bool {
	for _, busy := range s[staffID] {
		if busy.Overlaps(candidate) {
			return false
		}
	}
	return true
}
