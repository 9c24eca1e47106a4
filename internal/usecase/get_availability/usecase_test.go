package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	hoursRepo "github.com/klmnv/Salon-BookingService/internal/infra/storage/hours"
	"github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
	"github.com/klmnv/Salon-BookingService/pkg/types"
)

const (
	testLocationID = "5f0c2c1a-9a10-4e9e-b8a3-1a2b3c4d5e6f"
	serviceManicure = "a1111111-1111-1111-1111-111111111111"
	servicePedicure = "a2222222-2222-2222-2222-222222222222"
	serviceFacial   = "a3333333-3333-3333-3333-333333333333"
	staffAnna       = "b1111111-1111-1111-1111-111111111111"
	staffBella      = "b2222222-2222-2222-2222-222222222222"
)

// Фиксированное «сейчас»: вторник 1 сентября 2026
var testNow = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

var (
	saturday = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC) // суббота
	tuesday  = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC) // вторник
)

// --- Стабы зависимостей ---

type stubBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (s *stubBookingRepo) GetByLocationWithFilter(_ context.Context, _ domain.LocationBookingsFilter) ([]*domain.Booking, error) {
	return s.bookings, s.err
}

type stubStaffRepo struct {
	roster []*domain.StaffMember
	err    error
}

func (s *stubStaffRepo) ListActiveByLocation(_ context.Context, _ string) ([]*domain.StaffMember, error) {
	return s.roster, s.err
}

type stubHoursRepo struct {
	rows map[time.Weekday]*domain.LocationDayHours
	err  error
}

func (s *stubHoursRepo) GetByLocationAndWeekday(_ context.Context, _ string, weekday time.Weekday) (*domain.LocationDayHours, error) {
	if s.err != nil {
		return nil, s.err
	}
	if row, ok := s.rows[weekday]; ok {
		return row, nil
	}
	return nil, hoursRepo.ErrHoursNotFound
}

type stubDirectory struct {
	location *locationdirectory.Location
	services []*locationdirectory.Service
	locErr   error
	svcErr   error
}

func (s *stubDirectory) GetLocation(_ context.Context, _ string) (*locationdirectory.Location, error) {
	if s.locErr != nil {
		return nil, s.locErr
	}
	return s.location, nil
}

func (s *stubDirectory) ListServices(_ context.Context, _ string) ([]*locationdirectory.Service, error) {
	if s.svcErr != nil {
		return nil, s.svcErr
	}
	return s.services, nil
}

type fixedTimeProvider struct{ now time.Time }

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Хелперы ---

func defaultDirectory() *stubDirectory {
	return &stubDirectory{
		location: &locationdirectory.Location{ID: testLocationID, Name: "Downtown", IsActive: true},
		services: []*locationdirectory.Service{
			{ID: serviceManicure, LocationID: testLocationID, Name: "Manicure", DurationMinutes: 30},
			{ID: servicePedicure, LocationID: testLocationID, Name: "Pedicure", DurationMinutes: 60},
			{ID: serviceFacial, LocationID: testLocationID, Name: "Facial", DurationMinutes: 60},
		},
	}
}

func newUseCase(bookings *stubBookingRepo, staff *stubStaffRepo, hours *stubHoursRepo, directory *stubDirectory) *UseCase {
	if hours == nil {
		hours = &stubHoursRepo{}
	}
	if directory == nil {
		directory = defaultDirectory()
	}
	uc := NewUseCase(bookings, staff, hours, directory, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func openStaff(id, name string) *domain.StaffMember {
	return &domain.StaffMember{ID: id, LocationID: testLocationID, Name: name, IsActive: true}
}

func restrictedStaff(id, name string, serviceIDs ...string) *domain.StaffMember {
	member := openStaff(id, name)
	member.ServiceIDs = serviceIDs
	return member
}

func activeBooking(start types.TimeOfDay, duration int, staffID string) *domain.Booking {
	return &domain.Booking{
		LocationID:      testLocationID,
		BookingDate:     tuesday,
		StartTime:       start,
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
		Assignments:     []domain.StaffAssignment{{StaffID: staffID, ServiceID: serviceManicure}},
	}
}

func slotStrings(slots []types.TimeOfDay) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.String()
	}
	return result
}

// --- Тесты ---

func TestExecute_WeekdayAndWeekendHours(t *testing.T) {
	uc := newUseCase(
		&stubBookingRepo{},
		&stubStaffRepo{roster: []*domain.StaffMember{openStaff(staffAnna, "Anna")}},
		nil, nil,
	)

	// Вторник: дефолтные будничные часы 09:00-19:00
	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, "09:00", resp.Hours.Open.Military())
	assert.Equal(t, "19:00", resp.Hours.Close.Military())
	require.NotEmpty(t, resp.AvailableSlots)
	assert.Equal(t, "9:00 AM", resp.AvailableSlots[0].String())
	assert.Equal(t, "6:30 PM", resp.AvailableSlots[len(resp.AvailableSlots)-1].String())
	assert.Len(t, resp.AvailableSlots, 20)

	// Суббота: дефолтные выходные часы 10:00-18:00
	resp, err = uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            saturday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, "10:00", resp.Hours.Open.Military())
	assert.Equal(t, "18:00", resp.Hours.Close.Military())
	assert.Equal(t, "10:00 AM", resp.AvailableSlots[0].String())
	assert.Equal(t, "5:30 PM", resp.AvailableSlots[len(resp.AvailableSlots)-1].String())
}

func TestExecute_ConfiguredHoursOverrideDefaults(t *testing.T) {
	hours := &stubHoursRepo{rows: map[time.Weekday]*domain.LocationDayHours{
		time.Tuesday: {
			LocationID: testLocationID,
			Weekday:    time.Tuesday,
			IsOpen:     true,
			Open:       types.MustTimeOfDay(11, 0),
			Close:      types.MustTimeOfDay(15, 0),
		},
	}}

	uc := newUseCase(
		&stubBookingRepo{},
		&stubStaffRepo{roster: []*domain.StaffMember{openStaff(staffAnna, "Anna")}},
		hours, nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, "11:00", resp.Hours.Open.Military())
	assert.Equal(t, "15:00", resp.Hours.Close.Military())
	// Хвостовые слоты, вылезающие за закрытие, исключены:
	// последний часовой слот начинается в 14:00
	assert.Equal(t, "2:00 PM", resp.AvailableSlots[len(resp.AvailableSlots)-1].String())
}

func TestExecute_ClosedDay(t *testing.T) {
	hours := &stubHoursRepo{rows: map[time.Weekday]*domain.LocationDayHours{
		time.Tuesday: {
			LocationID: testLocationID,
			Weekday:    time.Tuesday,
			IsOpen:     false,
		},
	}}

	uc := newUseCase(
		&stubBookingRepo{},
		&stubStaffRepo{roster: []*domain.StaffMember{openStaff(staffAnna, "Anna")}},
		hours, nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.AvailableSlots)
	assert.Empty(t, resp.BestFitSlots)
}

func TestExecute_HalfOpenBoundaries(t *testing.T) {
	// Единственный мастер занят в [10:00, 10:30)
	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		activeBooking(types.MustTimeOfDay(10, 0), 30, staffAnna),
	}}

	uc := newUseCase(
		bookings,
		&stubStaffRepo{roster: []*domain.StaffMember{openStaff(staffAnna, "Anna")}},
		nil, nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	slots := slotStrings(resp.AvailableSlots)

	// Слот [9:30, 10:00) касается брони только границей - не конфликт
	assert.Contains(t, slots, "9:30 AM")
	// Слот [10:00, 10:30) совпадает с бронью - конфликт
	assert.NotContains(t, slots, "10:00 AM")
	// Слот [10:30, 11:00) начинается ровно в конце брони - не конфликт
	assert.Contains(t, slots, "10:30 AM")
}

func TestExecute_OverlapWithLongerDuration(t *testing.T) {
	// Бронь [10:00, 10:30), запрошенная длительность 60 минут:
	// слот [9:30, 10:30) пересекается с бронью
	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		activeBooking(types.MustTimeOfDay(10, 0), 30, staffAnna),
	}}

	uc := newUseCase(
		bookings,
		&stubStaffRepo{roster: []*domain.StaffMember{openStaff(staffAnna, "Anna")}},
		nil, nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	slots := slotStrings(resp.AvailableSlots)
	assert.NotContains(t, slots, "9:30 AM")
	assert.NotContains(t, slots, "10:00 AM")
	assert.Contains(t, slots, "9:00 AM")  // [9:00, 10:00) граничит с бронью
	assert.Contains(t, slots, "10:30 AM") // [10:30, 11:30) начинается в конце брони
}

func TestExecute_ExistentialRuleOverStaff(t *testing.T) {
	// Anna (открытая квалификация) занята в [10:00, 11:00).
	// Bella умеет только маникюр и свободна.
	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		activeBooking(types.MustTimeOfDay(10, 0), 60, staffAnna),
	}}
	roster := &stubStaffRepo{roster: []*domain.StaffMember{
		openStaff(staffAnna, "Anna"),
		restrictedStaff(staffBella, "Bella", serviceManicure),
	}}

	uc := newUseCase(bookings, roster, nil, nil)

	// Запрос на маникюр: Bella подходит и свободна, слот 10:00 остается доступным
	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
		ServiceIDs:      []string{serviceManicure},
	})
	require.NoError(t, err)
	assert.Contains(t, slotStrings(resp.AvailableSlots), "10:00 AM")

	// Запрос на уход за лицом: Bella не подходит, остается только занятая Anna -
	// слоты, пересекающиеся с [10:00, 11:00), недоступны
	resp, err = uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
		ServiceIDs:      []string{serviceFacial},
	})
	require.NoError(t, err)

	slots := slotStrings(resp.AvailableSlots)
	assert.NotContains(t, slots, "10:00 AM")
	assert.NotContains(t, slots, "10:30 AM")
	assert.Contains(t, slots, "11:00 AM")
}

func TestExecute_ServiceEligibility(t *testing.T) {
	// Единственный мастер умеет маникюр и педикюр
	roster := &stubStaffRepo{roster: []*domain.StaffMember{
		restrictedStaff(staffAnna, "Anna", serviceManicure, servicePedicure),
	}}

	uc := newUseCase(&stubBookingRepo{}, roster, nil, nil)

	// Запрос только маникюра - мастер подходит
	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
		ServiceIDs:      []string{serviceManicure},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AvailableSlots)

	// Запрос услуги вне квалификации - слотов нет, но это не ошибка
	resp, err = uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
		ServiceIDs:      []string{serviceFacial},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableSlots)
	assert.Empty(t, resp.BestFitSlots)
}

func TestExecute_ExplicitStaffSelection(t *testing.T) {
	// Bella занята весь день, Anna свободна
	busy := make([]*domain.Booking, 0)
	for h := 9; h < 19; h++ {
		busy = append(busy, activeBooking(types.MustTimeOfDay(h, 0), 60, staffBella))
	}

	roster := &stubStaffRepo{roster: []*domain.StaffMember{
		openStaff(staffAnna, "Anna"),
		openStaff(staffBella, "Bella"),
	}}

	uc := newUseCase(&stubBookingRepo{bookings: busy}, roster, nil, nil)

	// Без явного выбора мастера слоты есть (Anna свободна)
	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AvailableSlots)

	// Явный выбор занятой Bella сужает поиск - слотов нет
	resp, err = uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
		StaffIDs:        []string{staffBella},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableSlots)
}

func TestExecute_BestFitSlots(t *testing.T) {
	uc := newUseCase(
		&stubBookingRepo{},
		&stubStaffRepo{roster: []*domain.StaffMember{openStaff(staffAnna, "Anna")}},
		nil, nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	// Максимум 3 рекомендации, первые предпочтительные времена по порядку
	assert.Equal(t, []string{"10:00 AM", "10:30 AM", "1:00 PM"}, slotStrings(resp.BestFitSlots))

	// Рекомендации всегда подмножество доступных слотов
	available := slotStrings(resp.AvailableSlots)
	for _, slot := range slotStrings(resp.BestFitSlots) {
		assert.Contains(t, available, slot)
	}
}

func TestExecute_BestFitSkipsUnavailable(t *testing.T) {
	// Утренние предпочтительные слоты заняты - рекомендации сдвигаются на дневные
	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		activeBooking(types.MustTimeOfDay(10, 0), 60, staffAnna),
	}}

	uc := newUseCase(
		bookings,
		&stubStaffRepo{roster: []*domain.StaffMember{openStaff(staffAnna, "Anna")}},
		nil, nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"1:00 PM", "1:30 PM", "3:00 PM"}, slotStrings(resp.BestFitSlots))
}

func TestExecute_EmptyRoster(t *testing.T) {
	uc := newUseCase(&stubBookingRepo{}, &stubStaffRepo{}, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.AvailableSlots)
	assert.Empty(t, resp.BestFitSlots)
	// Рабочие часы возвращаются и при пустом ответе
	assert.Equal(t, "09:00", resp.Hours.Open.Military())
}

func TestExecute_InactiveStaffIgnored(t *testing.T) {
	inactive := openStaff(staffAnna, "Anna")
	inactive.IsActive = false

	uc := newUseCase(
		&stubBookingRepo{},
		&stubStaffRepo{roster: []*domain.StaffMember{inactive}},
		nil, nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableSlots)
}

func TestExecute_CancelledBookingsDoNotBlock(t *testing.T) {
	cancelled := activeBooking(types.MustTimeOfDay(10, 0), 60, staffAnna)
	cancelled.Status = domain.StatusCancelledByCustomer

	uc := newUseCase(
		&stubBookingRepo{bookings: []*domain.Booking{cancelled}},
		&stubStaffRepo{roster: []*domain.StaffMember{openStaff(staffAnna, "Anna")}},
		nil, nil,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Contains(t, slotStrings(resp.AvailableSlots), "10:00 AM")
}

func TestExecute_Determinism(t *testing.T) {
	bookings := &stubBookingRepo{bookings: []*domain.Booking{
		activeBooking(types.MustTimeOfDay(11, 0), 90, staffAnna),
		activeBooking(types.MustTimeOfDay(15, 30), 30, staffBella),
	}}
	roster := &stubStaffRepo{roster: []*domain.StaffMember{
		openStaff(staffAnna, "Anna"),
		restrictedStaff(staffBella, "Bella", serviceManicure),
	}}

	uc := newUseCase(bookings, roster, nil, nil)

	req := &Request{
		LocationID:      testLocationID,
		Date:            tuesday,
		DurationMinutes: 45,
		ServiceIDs:      []string{serviceManicure},
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.AvailableSlots, second.AvailableSlots)
	assert.Equal(t, first.BestFitSlots, second.BestFitSlots)
}

func TestExecute_Errors(t *testing.T) {
	roster := &stubStaffRepo{roster: []*domain.StaffMember{openStaff(staffAnna, "Anna")}}

	t.Run("location not found", func(t *testing.T) {
		directory := &stubDirectory{locErr: locationdirectory.ErrLocationNotFound}
		uc := newUseCase(&stubBookingRepo{}, roster, nil, directory)

		_, err := uc.Execute(context.Background(), &Request{
			LocationID:      testLocationID,
			Date:            tuesday,
			DurationMinutes: 30,
		})
		assert.ErrorIs(t, err, ErrLocationNotFound)
	})

	t.Run("unknown service", func(t *testing.T) {
		uc := newUseCase(&stubBookingRepo{}, roster, nil, nil)

		_, err := uc.Execute(context.Background(), &Request{
			LocationID:      testLocationID,
			Date:            tuesday,
			DurationMinutes: 30,
			ServiceIDs:      []string{"c9999999-9999-9999-9999-999999999999"},
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		uc := newUseCase(&stubBookingRepo{}, roster, nil, nil)

		_, err := uc.Execute(context.Background(), &Request{
			LocationID: testLocationID,
			Date:       tuesday,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("date in past", func(t *testing.T) {
		uc := newUseCase(&stubBookingRepo{}, roster, nil, nil)

		_, err := uc.Execute(context.Background(), &Request{
			LocationID:      testLocationID,
			Date:            time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			DurationMinutes: 30,
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("booking lookup failure propagates", func(t *testing.T) {
		uc := newUseCase(&stubBookingRepo{err: assert.AnError}, roster, nil, nil)

		_, err := uc.Execute(context.Background(), &Request{
			LocationID:      testLocationID,
			Date:            tuesday,
			DurationMinutes: 30,
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGenerateSlotCatalog(t *testing.T) {
	weekday := domain.DefaultHoursFor(time.Tuesday)

	t.Run("30 minute duration fills the day", func(t *testing.T) {
		catalog := generateSlotCatalog(weekday, domain.SlotGridStepMinutes, 30)
		require.Len(t, catalog, 20)
		assert.Equal(t, "9:00 AM", catalog[0].String())
		assert.Equal(t, "6:30 PM", catalog[len(catalog)-1].String())
	})

	t.Run("longer duration drops trailing slots", func(t *testing.T) {
		catalog := generateSlotCatalog(weekday, domain.SlotGridStepMinutes, 90)
		assert.Equal(t, "5:30 PM", catalog[len(catalog)-1].String())
	})

	t.Run("duration not fitting the grid", func(t *testing.T) {
		hours := domain.DayHours{
			IsOpen: true,
			Open:   types.MustTimeOfDay(10, 0),
			Close:  types.MustTimeOfDay(18, 0),
		}
		catalog := generateSlotCatalog(hours, domain.SlotGridStepMinutes, 45)
		// Последний слот: [17:00, 17:45), слот 17:30 вылез бы за закрытие
		assert.Equal(t, "5:00 PM", catalog[len(catalog)-1].String())
	})

	t.Run("closed day yields nothing", func(t *testing.T) {
		assert.Empty(t, generateSlotCatalog(domain.DayHours{}, domain.SlotGridStepMinutes, 30))
	})
}

func TestFilterSameDaySlots(t *testing.T) {
	catalog := generateSlotCatalog(domain.DefaultHoursFor(time.Tuesday), domain.SlotGridStepMinutes, 30)

	// Для будущей даты каталог не меняется
	assert.Len(t, filterSameDaySlots(catalog, tuesday, testNow), len(catalog))

	// Для сегодняшней даты слоты раньше текущего времени отбрасываются
	now := time.Date(2026, 9, 8, 12, 10, 0, 0, time.UTC)
	filtered := filterSameDaySlots(catalog, tuesday, now)
	require.NotEmpty(t, filtered)
	assert.Equal(t, "12:30 PM", filtered[0].String())
}
