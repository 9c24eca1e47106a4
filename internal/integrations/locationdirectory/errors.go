package locationdirectory

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена в каталоге
	ErrLocationNotFound = errors.New("locationdirectory: location not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("locationdirectory: service not found")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("locationdirectory: invalid response")

	// ErrInternal возвращается при транспортных ошибках
	ErrInternal = errors.New("locationdirectory: internal error")
)
