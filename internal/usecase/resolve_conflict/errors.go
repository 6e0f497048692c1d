package resolve_conflict

import "errors"

var (
	// ErrAccessDenied возвращается, когда вызывающий не управляет расписанием работника
	ErrAccessDenied = errors.New("resolve_conflict: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_conflict: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_conflict: internal error")
)
