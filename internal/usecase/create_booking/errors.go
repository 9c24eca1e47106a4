package create_booking

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("create_booking: invalid input")
	// ErrInvalidDate дата в прошлом или невалидна
	ErrInvalidDate = errors.New("create_booking: invalid date")
	// ErrInvalidTime время начала вне сетки или уже прошло
	ErrInvalidTime = errors.New("create_booking: invalid start time")
	// ErrLocationNotFound локация не найдена
	ErrLocationNotFound = errors.New("create_booking: location not found")
	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")
	// ErrStaffNotEligible выбранный мастер не оказывает запрошенную услугу
	ErrStaffNotEligible = errors.New("create_booking: staff member is not eligible for the service")
	// ErrLocationClosed локация закрыта в запрошенное время
	ErrLocationClosed = errors.New("create_booking: location is closed")
	// ErrSlotTaken слот занят - нет свободного подходящего мастера
	ErrSlotTaken = errors.New("create_booking: slot is no longer available")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("create_booking: internal error")
)
