package update_weekly_schedule

import "errors"

var (
	// ErrAccessDenied возвращается, когда вызывающий не управляет расписанием работника
	ErrAccessDenied = errors.New("update_weekly_schedule: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_weekly_schedule: invalid input data")

	// ErrEmptyUpdate возвращается, когда запрос не содержит ни слотов, ни выделения
	ErrEmptyUpdate = errors.New("update_weekly_schedule: nothing to update")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_weekly_schedule: internal error")
)
