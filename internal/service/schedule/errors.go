package schedule

import "errors"

var (
	// ErrAccessDenied возвращается, когда вызывающий не управляет расписанием работника
	ErrAccessDenied = errors.New("schedule.service: access denied")

	// ErrRuleNotFound возвращается, когда у работника нет сохраненного правила
	ErrRuleNotFound = errors.New("schedule.service: rule not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
