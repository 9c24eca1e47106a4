package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	hoursRepo "github.com/klmnv/Salon-BookingService/internal/infra/storage/hours"
	directoryClient "github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	hoursRepo    HoursRepository
	directory    DirectoryClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	hoursRepo HoursRepository,
	directory DirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		hoursRepo:    hoursRepo,
		directory:    directory,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликтов и запись выполняются в сериализуемой транзакции:
// два одновременных бронирования одного мастера на пересекающиеся интервалы
// не могут закоммититься оба.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, location=%s, date=%s, time=%s, items=%d",
		req.CustomerID, req.LocationID, req.Date.Format(domain.DateFormat), req.StartTime, len(req.Items))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не должна быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Время начала не должно быть уже пройдено (для сегодняшней даты)
	if err := validateStartNotPassed(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Проверяем существование локации
	if _, err := uc.directory.GetLocation(ctx, req.LocationID); err != nil {
		if errors.Is(err, directoryClient.ErrLocationNotFound) {
			uc.logger.Warn("CreateBooking: location %s not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get location %s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 6. Получаем услуги и считаем суммарную длительность
	totalDuration := 0
	for _, item := range req.Items {
		service, err := uc.directory.GetService(ctx, req.LocationID, item.ServiceID)
		if err != nil {
			if errors.Is(err, directoryClient.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service %s not found at location %s", item.ServiceID, req.LocationID)
				return nil, fmt.Errorf("%w: service %s", ErrServiceNotFound, item.ServiceID)
			}
			uc.logger.Error("CreateBooking: failed to get service %s: %v", item.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		totalDuration += service.DurationMinutes
	}

	if err := validateDuration(totalDuration); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 7. Рабочие часы дня: интервал бронирования должен помещаться целиком
	weekday := req.Date.Weekday()
	dayHours := domain.DefaultHoursFor(weekday)

	configured, err := uc.hoursRepo.GetByLocationAndWeekday(ctx, req.LocationID, weekday)
	if err != nil && !errors.Is(err, hoursRepo.ErrHoursNotFound) {
		uc.logger.Error("CreateBooking: failed to get hours for location %s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location hours: %v", ErrInternal, err)
	}
	if configured != nil {
		dayHours = configured.DayHours()
	}

	if err := validateWithinHours(dayHours, req.StartTime, totalDuration); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 8. Проверка конфликтов и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Состав активных мастеров
		roster, err := uc.staffRepo.ListActiveByLocation(txCtx, req.LocationID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list staff for location %s: %v", req.LocationID, err)
			return fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
		}

		// 8.2. Активные бронирования на дату - свежий снимок внутри транзакции
		filter := domain.LocationBookingsFilter{
			LocationID:      req.LocationID,
			Date:            &req.Date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetByLocationWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		schedule := domain.BuildStaffSchedule(bookings)
		interval := domain.Interval{Start: req.StartTime, DurationMinutes: totalDuration}

		// 8.3. Подбираем мастера на каждую услугу
		assignments, err := resolveAssignments(req.Items, roster, schedule, interval, uc.logger)
		if err != nil {
			return err
		}

		// 8.4. Создаем бронирование
		booking := &domain.Booking{
			ID:              uuid.NewString(),
			CustomerID:      req.CustomerID,
			LocationID:      req.LocationID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: totalDuration,
			Status:          domain.StatusConfirmed,
			Assignments:     assignments,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	// Конвертируем в response
	assignments := make([]ResponseAssignment, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		assignments = append(assignments, ResponseAssignment{StaffID: a.StaffID, ServiceID: a.ServiceID})
	}

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		LocationID:      result.LocationID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Assignments:     assignments,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveAssignments подбирает мастера на каждую услугу бронирования.
// Явно выбранный мастер обязан подходить по квалификации и быть свободным,
// иначе берется первый подходящий свободный мастер в порядке состава
// (порядок стабилен - репозиторий сортирует по имени и ID).
// Один мастер занимает весь интервал бронирования, поэтому дважды в одном
// бронировании он участвовать не может.
func resolveAssignments(
	items []Item,
	roster []*domain.StaffMember,
	schedule domain.StaffSchedule,
	interval domain.Interval,
	logger Logger,
) ([]domain.StaffAssignment, error) {
	byID := make(map[string]*domain.StaffMember, len(roster))
	for _, member := range roster {
		byID[member.ID] = member
	}

	taken := make(map[string]struct{}, len(items))
	assignments := make([]domain.StaffAssignment, 0, len(items))

	for _, item := range items {
		serviceID := []string{item.ServiceID}

		if item.StaffID != nil {
			member, ok := byID[*item.StaffID]
			if !ok || !member.IsActive {
				logger.Warn("CreateBooking: requested staff %s is not on the active roster", *item.StaffID)
				return nil, fmt.Errorf("%w: staff %s", ErrStaffNotEligible, *item.StaffID)
			}
			if !member.CanPerform(serviceID) {
				logger.Warn("CreateBooking: staff %s cannot perform service %s", member.ID, item.ServiceID)
				return nil, fmt.Errorf("%w: staff %s cannot perform service %s", ErrStaffNotEligible, member.ID, item.ServiceID)
			}
			if _, busy := taken[member.ID]; busy {
				logger.Warn("CreateBooking: staff %s already assigned within this booking", member.ID)
				return nil, fmt.Errorf("%w: staff %s", ErrSlotTaken, member.ID)
			}
			if !schedule.IsStaffFree(member.ID, interval) {
				logger.Warn("CreateBooking: staff %s is busy at %s", member.ID, interval.Start)
				return nil, fmt.Errorf("%w: staff %s is busy", ErrSlotTaken, member.ID)
			}

			taken[member.ID] = struct{}{}
			assignments = append(assignments, domain.StaffAssignment{StaffID: member.ID, ServiceID: item.ServiceID})
			continue
		}

		// Автоподбор: первый подходящий свободный мастер
		var resolved *domain.StaffMember
		for _, member := range roster {
			if !member.IsActive || !member.CanPerform(serviceID) {
				continue
			}
			if _, busy := taken[member.ID]; busy {
				continue
			}
			if !schedule.IsStaffFree(member.ID, interval) {
				continue
			}
			resolved = member
			break
		}

		if resolved == nil {
			logger.Warn("CreateBooking: no free eligible staff for service %s at %s", item.ServiceID, interval.Start)
			return nil, fmt.Errorf("%w: no free staff for service %s", ErrSlotTaken, item.ServiceID)
		}

		taken[resolved.ID] = struct{}{}
		assignments = append(assignments, domain.StaffAssignment{StaffID: resolved.ID, ServiceID: item.ServiceID})
	}

	return assignments, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня.
// Сравниваются только календарные компоненты, без смещения через UTC.
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
