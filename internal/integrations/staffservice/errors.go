package staffservice

import "errors"

var (
	// ErrWorkerNotFound возвращается, когда работник не найден
	ErrWorkerNotFound = errors.New("staffservice client: worker not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что StaffService недоступен и проверку менеджерских прав
	// выполнить нельзя (доступ в этом случае не расширяется)
	ErrServiceDegraded = errors.New("staffservice unavailable: graceful degradation applied")
)
