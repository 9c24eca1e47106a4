package models

import (
	"errors"
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ActorID            string `json:"actorId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	ActorID string `json:"actorId"`
	Status  string `json:"status"`
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID string  `json:"customerId"`
	ActorID    string  `json:"actorId"`
	Status     *string `json:"status,omitempty"`
}

// GetLocationBookingsRequest запрос на получение бронирований локации
type GetLocationBookingsRequest struct {
	ActorID         string     `json:"actorId"`
	LocationID      string     `json:"locationId"`
	Date            *time.Time `json:"date,omitempty"`            // Фильтр по дате (опционально)
	StaffID         *string    `json:"staffId,omitempty"`         // Фильтр по мастеру (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetLocationBookingsRequest) ToDomainFilter() (domain.LocationBookingsFilter, error) {
	filter := domain.LocationBookingsFilter{
		LocationID:      r.LocationID,
		Date:            r.Date,
		StaffID:         r.StaffID,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AssignmentResponse назначение мастера на услугу
type AssignmentResponse struct {
	StaffID   string `json:"staffId"`
	ServiceID string `json:"serviceId"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              string               `json:"id"`
	CustomerID      string               `json:"customerId"`
	LocationID      string               `json:"locationId"`
	BookingDate     string               `json:"bookingDate"` // "2026-10-15"
	StartTime       string               `json:"startTime"`   // "10:00 AM"
	DurationMinutes int                  `json:"durationMinutes"`
	Status          string               `json:"status"`
	Assignments     []AssignmentResponse `json:"assignments"`
	Notes           *string              `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	assignments := make([]AssignmentResponse, 0, len(b.Assignments))
	for _, a := range b.Assignments {
		assignments = append(assignments, AssignmentResponse{StaffID: a.StaffID, ServiceID: a.ServiceID})
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		LocationID:         b.LocationID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		Assignments:        assignments,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByCustomer,
		domain.StatusCancelledBySalon,
		domain.StatusNoShow:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
