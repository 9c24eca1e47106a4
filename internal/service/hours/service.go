package hours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	directoryClient "github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
	"github.com/klmnv/Salon-BookingService/internal/service/hours/models"
)

// Service сервис для управления рабочими часами локаций
type Service struct {
	hoursRepo HoursRepository
	directory DirectoryClient
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(
	hoursRepo HoursRepository,
	directory DirectoryClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		hoursRepo: hoursRepo,
		directory: directory,
		txManager: txManager,
		logger:    logger,
	}
}

// GetWeek возвращает недельное расписание локации.
// Для дней без настроенных часов подставляются дефолты:
// будни 09:00-19:00, выходные 10:00-18:00.
func (s *Service) GetWeek(ctx context.Context, locationID string) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: fetching hours for location=%s", locationID)

	if _, err := s.directory.GetLocation(ctx, locationID); err != nil {
		if errors.Is(err, directoryClient.ErrLocationNotFound) {
			s.logger.Warn("GetWeek: location %s not found", locationID)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("GetWeek: failed to get location %s: %v", locationID, err)
		return nil, fmt.Errorf("%w: GetWeek - directory error: %v", ErrInternal, err)
	}

	rows, err := s.hoursRepo.ListByLocation(ctx, locationID)
	if err != nil {
		s.logger.Error("GetWeek: repository error for location=%s: %v", locationID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	configured := make(map[time.Weekday]*domain.LocationDayHours, len(rows))
	for _, row := range rows {
		configured[row.Weekday] = row
	}

	days := make([]models.DayHoursResponse, 0, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		if row, ok := configured[weekday]; ok {
			days = append(days, models.FromDayHours(weekday, row.DayHours(), false))
			continue
		}
		days = append(days, models.FromDayHours(weekday, domain.DefaultHoursFor(weekday), true))
	}

	s.logger.Info("GetWeek: %d of %d days configured for location=%s", len(rows), len(weekdayOrder), locationID)
	return &models.WeekResponse{LocationID: locationID, Days: days}, nil
}

// UpdateWeek обновляет расписание локации.
// Доступно только менеджерам локации. Все строки записываются в одной
// транзакции - расписание меняется атомарно.
func (s *Service) UpdateWeek(ctx context.Context, req *models.UpdateWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("UpdateWeek: updating hours for location=%s by actor=%s, days=%d",
		req.LocationID, req.ActorID, len(req.Days))

	if len(req.Days) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	// Проверяем права доступа менеджера
	location, err := s.directory.GetLocation(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrLocationNotFound) {
			s.logger.Warn("UpdateWeek: location %s not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("UpdateWeek: failed to get location %s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: UpdateWeek - directory error: %v", ErrInternal, err)
	}
	if !location.HasManager(req.ActorID) {
		s.logger.Warn("UpdateWeek: actor %s is not a manager of location %s", req.ActorID, req.LocationID)
		return nil, ErrAccessDenied
	}

	// Конвертируем и валидируем все строки до записи
	seen := make(map[time.Weekday]struct{}, len(req.Days))
	rows := make([]*domain.LocationDayHours, 0, len(req.Days))
	for _, day := range req.Days {
		row, err := day.ToDomainRow(req.LocationID)
		if err != nil {
			s.logger.Warn("UpdateWeek: invalid day %q for location=%s: %v", day.Weekday, req.LocationID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, ok := seen[row.Weekday]; ok {
			s.logger.Warn("UpdateWeek: duplicate weekday %s for location=%s", row.Weekday, req.LocationID)
			return nil, fmt.Errorf("%w: duplicate weekday %s", ErrInvalidInput, row.Weekday)
		}
		seen[row.Weekday] = struct{}{}
		rows = append(rows, row)
	}

	// Записываем все дни атомарно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, row := range rows {
			if _, err := s.hoursRepo.Upsert(txCtx, row); err != nil {
				s.logger.Error("UpdateWeek: upsert failed for location=%s, weekday=%s: %v",
					req.LocationID, row.Weekday, err)
				return fmt.Errorf("%w: UpdateWeek - repository error: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateWeek: successfully updated %d days for location=%s", len(rows), req.LocationID)
	return s.GetWeek(ctx, req.LocationID)
}
