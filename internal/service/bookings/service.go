package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	bookingRepo "github.com/klmnv/Salon-BookingService/internal/infra/storage/booking"
	directoryClient "github.com/klmnv/Salon-BookingService/internal/integrations/locationdirectory"
	"github.com/klmnv/Salon-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	directory   DirectoryClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	directory DirectoryClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		directory:   directory,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - клиент может видеть только свое бронирование,
// менеджер локации - любое бронирование своей локации
func (s *Service) GetByID(ctx context.Context, id string, actorID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for actor=%s", id, actorID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkBookingAccess(ctx, booking, actorID); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%s to booking id=%s", actorID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу. Доступна только самому клиенту.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%s, status=%v", req.CustomerID, req.Status)

	// Историю видит только сам клиент
	if req.ActorID != req.CustomerID {
		s.logger.Warn("GetCustomerBookings: access denied for actor=%s to customer=%s", req.ActorID, req.CustomerID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%s", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%s", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetLocationBookings получает бронирования локации с гибкой фильтрацией
// Поддерживает фильтрацию по дате, мастеру, статусу и включению неактивных
// бронирований. Доступно только менеджерам локации.
func (s *Service) GetLocationBookings(ctx context.Context, req *models.GetLocationBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetLocationBookings: fetching bookings for location=%s, actor=%s", req.LocationID, req.ActorID)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.LocationID, req.ActorID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetLocationBookings: invalid filter for location=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByLocationWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetLocationBookings: repository error for location=%s: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: GetLocationBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetLocationBookings: successfully fetched %d bookings for location=%s", len(bookings), req.LocationID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только свое бронирование (cancelled_by_customer),
// менеджер локации - любое бронирование локации (cancelled_by_salon)
func (s *Service) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by actor=%s", bookingID, req.ActorID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.BookingStatus

	if booking.CustomerID == req.ActorID {
		cancelStatus = domain.StatusCancelledByCustomer
	} else {
		// Не владелец - должен быть менеджером локации
		if err := s.checkManagerAccess(ctx, booking.LocationID, req.ActorID); err != nil {
			s.logger.Warn("Cancel: access denied for actor=%s to cancel booking id=%s", req.ActorID, bookingID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledBySalon
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrCannotCancel):
			s.logger.Warn("Cancel: booking id=%s no longer cancellable", bookingID)
			return ErrCannotCancel
		default:
			s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только менеджерам локации
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by actor=%s",
		bookingID, req.Status, req.ActorID)

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер локации)
	if err := s.checkManagerAccess(ctx, booking.LocationID, req.ActorID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%s not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// checkBookingAccess проверяет, что актор имеет доступ к бронированию
// Доступ есть у владельца бронирования и у менеджера локации
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, actorID string) error {
	if booking.CustomerID == actorID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, booking.LocationID, actorID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что актор является менеджером локации
func (s *Service) checkManagerAccess(ctx context.Context, locationID string, actorID string) error {
	location, err := s.directory.GetLocation(ctx, locationID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrLocationNotFound) {
			s.logger.Warn("checkManagerAccess: location %s not found", locationID)
			return ErrLocationNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get location %s: %v", locationID, err)
		return fmt.Errorf("%w: checkManagerAccess - directory error: %v", ErrInternal, err)
	}

	if !location.HasManager(actorID) {
		s.logger.Warn("checkManagerAccess: actor %s is not a manager of location %s", actorID, locationID)
		return ErrAccessDenied
	}

	return nil
}
