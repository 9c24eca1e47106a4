package get_availability

import (
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/pkg/types"
)

// generateSlotCatalog генерирует сетку кандидатных времен начала на день.
// Слоты идут от времени открытия с фиксированным шагом. Слот попадает в
// каталог, только если интервал [слот, слот+длительность) целиком помещается
// до закрытия - хвостовые слоты, вылезающие за закрытие, исключаются.
func generateSlotCatalog(hours domain.DayHours, stepMinutes, durationMinutes int) []types.TimeOfDay {
	if !hours.IsOpen || !hours.Open.Before(hours.Close) {
		return []types.TimeOfDay{}
	}

	catalog := make([]types.TimeOfDay, 0)

	for minutes := hours.Open.Minutes(); minutes+durationMinutes <= hours.Close.Minutes(); minutes += stepMinutes {
		catalog = append(catalog, types.TimeOfDay(minutes))
	}

	return catalog
}

// filterSameDaySlots убирает слоты, начинающиеся раньше текущего времени,
// если запрошенная дата - сегодня. Для будущих дат возвращает каталог без изменений.
func filterSameDaySlots(catalog []types.TimeOfDay, requestDate, now time.Time) []types.TimeOfDay {
	if !isSameDay(requestDate, now) {
		return catalog
	}

	currentMinutes := now.Hour()*60 + now.Minute()

	filtered := make([]types.TimeOfDay, 0, len(catalog))
	for _, slot := range catalog {
		if slot.Minutes() >= currentMinutes {
			filtered = append(filtered, slot)
		}
	}

	return filtered
}

// filterEligibleStaff возвращает мастеров, способных выполнить запрошенную работу.
// Сначала отбор по квалификации (пустой список услуг мастера - открытая
// квалификация, иначе все запрошенные услуги должны входить в список),
// затем пересечение с явно выбранными мастерами, если они указаны.
func filterEligibleStaff(roster []*domain.StaffMember, serviceIDs, staffIDs []string) []*domain.StaffMember {
	var requested map[string]struct{}
	if len(staffIDs) > 0 {
		requested = make(map[string]struct{}, len(staffIDs))
		for _, id := range staffIDs {
			requested[id] = struct{}{}
		}
	}

	eligible := make([]*domain.StaffMember, 0, len(roster))
	for _, member := range roster {
		if !member.IsActive {
			continue
		}
		if !member.CanPerform(serviceIDs) {
			continue
		}
		if requested != nil {
			if _, ok := requested[member.ID]; !ok {
				continue
			}
		}
		eligible = append(eligible, member)
	}

	return eligible
}

// selectAvailableSlots решает для каждого слота каталога, доступен ли он.
// Слот доступен, если ХОТЯ БЫ ОДИН подходящий мастер свободен на всем
// интервале [слот, слот+длительность) - семантика «любой свободный мастер»,
// клиенту не нужен конкретный человек, нужен кто-то, кто умеет.
func selectAvailableSlots(
	catalog []types.TimeOfDay,
	eligible []*domain.StaffMember,
	schedule domain.StaffSchedule,
	durationMinutes int,
) []types.TimeOfDay {
	available := make([]types.TimeOfDay, 0, len(catalog))

	for _, slot := range catalog {
		candidate := domain.Interval{Start: slot, DurationMinutes: durationMinutes}

		for _, member := range eligible {
			if schedule.IsStaffFree(member.ID, candidate) {
				available = append(available, slot)
				break
			}
		}
	}

	return available
}

// selectBestFitSlots выбирает рекомендованные слоты: фиксированный список
// предпочтительных времен пересекается с доступными слотами, первые
// MaxBestFitSlots совпадений в хронологическом порядке попадают в ответ.
func selectBestFitSlots(available []types.TimeOfDay) []types.TimeOfDay {
	preferred := make(map[types.TimeOfDay]struct{}, len(domain.PreferredSlotTimes))
	for _, t := range domain.PreferredSlotTimes {
		preferred[t] = struct{}{}
	}

	bestFit := make([]types.TimeOfDay, 0, domain.MaxBestFitSlots)
	for _, slot := range available {
		if _, ok := preferred[slot]; !ok {
			continue
		}
		bestFit = append(bestFit, slot)
		if len(bestFit) == domain.MaxBestFitSlots {
			break
		}
	}

	return bestFit
}

// isSameDay проверяет, что две даты относятся к одному календарному дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня.
// Сравниваются только календарные компоненты, без смещения через UTC.
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
