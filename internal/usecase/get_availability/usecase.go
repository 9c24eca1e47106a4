package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	hoursRepo "github.com/klmnv/Salon-BookingService/internal/infra/storage/hours"
	directoryClient "github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
)

// UseCase use case расчета доступности слотов.
//
// Чистое вычисление запрос-ответ: читает снимки данных (бронирования, состав
// мастеров, рабочие часы) и возвращает значение, ничего не изменяя.
type UseCase struct {
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	hoursRepo    HoursRepository
	directory    DirectoryClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	hoursRepo HoursRepository,
	directory DirectoryClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		hoursRepo:    hoursRepo,
		directory:    directory,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет расчет доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: location=%s, date=%s, duration=%d, services=%d, staff=%d",
		req.LocationID, req.Date.Format(domain.DateFormat), req.DurationMinutes,
		len(req.ServiceIDs), len(req.StaffIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не должна быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Проверяем существование локации
	if _, err := uc.directory.GetLocation(ctx, req.LocationID); err != nil {
		if errors.Is(err, directoryClient.ErrLocationNotFound) {
			uc.logger.Warn("GetAvailability: location %s not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetAvailability: failed to get location %s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 5. Проверяем существование запрошенных услуг
	if len(req.ServiceIDs) > 0 {
		services, err := uc.directory.ListServices(ctx, req.LocationID)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to list services for location %s: %v", req.LocationID, err)
			return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
		}
		if err := validateServicesExist(services, req.ServiceIDs); err != nil {
			uc.logger.Warn("GetAvailability: %v", err)
			return nil, err
		}
	}

	// 6. Рабочие часы на день недели запрошенной даты.
	// День недели считается по календарным компонентам даты.
	weekday := req.Date.Weekday()
	dayHours := domain.DefaultHoursFor(weekday)

	configured, err := uc.hoursRepo.GetByLocationAndWeekday(ctx, req.LocationID, weekday)
	if err != nil && !errors.Is(err, hoursRepo.ErrHoursNotFound) {
		uc.logger.Error("GetAvailability: failed to get hours for location %s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location hours: %v", ErrInternal, err)
	}
	if configured != nil {
		dayHours = configured.DayHours()
	}

	// Локация закрыта в этот день - пустой результат, не ошибка
	if !dayHours.IsOpen {
		uc.logger.Info("GetAvailability: location %s is closed on %s",
			req.LocationID, req.Date.Format(domain.DateFormat))
		return emptyResponse(req, dayHours), nil
	}

	// 7. Состав активных мастеров
	roster, err := uc.staffRepo.ListActiveByLocation(ctx, req.LocationID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list staff for location %s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	// 8. Отбор мастеров по квалификации и явному выбору.
	// Пустой результат отбора - нормальный ответ без слотов, не ошибка.
	eligible := filterEligibleStaff(roster, req.ServiceIDs, req.StaffIDs)
	if len(eligible) == 0 {
		uc.logger.Info("GetAvailability: no eligible staff at location %s", req.LocationID)
		return emptyResponse(req, dayHours), nil
	}

	// 9. Активные бронирования на дату
	filter := domain.LocationBookingsFilter{
		LocationID:      req.LocationID,
		Date:            &req.Date,
		IncludeInactive: false, // Только занимающие время статусы
	}

	bookings, err := uc.bookingRepo.GetByLocationWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 10. Строим индекс занятости и решаем доступность каждого слота
	schedule := domain.BuildStaffSchedule(bookings)

	catalog := generateSlotCatalog(dayHours, domain.SlotGridStepMinutes, req.DurationMinutes)
	catalog = filterSameDaySlots(catalog, req.Date, now)

	available := selectAvailableSlots(catalog, eligible, schedule, req.DurationMinutes)
	bestFit := selectBestFitSlots(available)

	uc.logger.Info("GetAvailability: %d of %d slots available for location=%s, date=%s",
		len(available), len(catalog), req.LocationID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:           req.Date,
		LocationID:     req.LocationID,
		AvailableSlots: available,
		BestFitSlots:   bestFit,
		Hours:          dayHours,
	}, nil
}
