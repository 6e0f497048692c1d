package apply_schedule_rule

import "errors"

var (
	// ErrAccessDenied возвращается, когда вызывающий не управляет расписанием работника
	ErrAccessDenied = errors.New("apply_schedule_rule: access denied")

	// ErrInvalidRule возвращается при некорректном правиле повторяемости.
	// Обернутое сообщение содержит конкретное поле для field-level ошибки на клиенте.
	ErrInvalidRule = errors.New("apply_schedule_rule: invalid rule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("apply_schedule_rule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("apply_schedule_rule: internal error")
)
