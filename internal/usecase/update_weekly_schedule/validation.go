package update_weekly_schedule

import (
	"fmt"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.CallerID <= 0 {
		return fmt.Errorf("%w: callerID must be positive", ErrInvalidInput)
	}
	if !req.WorkType.IsValid() {
		return fmt.Errorf("%w: unknown work type %q", ErrInvalidInput, req.WorkType)
	}

	hasSlots := len(req.Slots) > 0
	hasSelection := req.Selection != nil

	if !hasSlots && !hasSelection {
		return ErrEmptyUpdate
	}
	if hasSlots && hasSelection {
		return fmt.Errorf("%w: slots and selection are mutually exclusive", ErrInvalidInput)
	}

	if hasSlots {
		return validateSlots(req.Slots, req.WorkType)
	}
	return validateSelection(req.Selection, req.WorkType)
}

// validateSlots проверяет явные слоты: час, минута и попадание в сетку типа занятости
func validateSlots(slots []SlotPatch, workType domain.WorkType) error {
	step := workType.SlotStepMinutes()

	for _, slot := range slots {
		if slot.Date.IsZero() {
			return fmt.Errorf("%w: slot date is required", ErrInvalidInput)
		}
		if slot.Hour < 0 || slot.Hour > 23 {
			return fmt.Errorf("%w: hour %d outside 0-23", ErrInvalidInput, slot.Hour)
		}
		if slot.Minute < 0 || slot.Minute > 59 || slot.Minute%step != 0 {
			return fmt.Errorf("%w: minute %d is not on the %d-minute grid", ErrInvalidInput, slot.Minute, step)
		}
	}

	return nil
}

// validateSelection проверяет координаты прямоугольного выделения
func validateSelection(sel *RectSelection, workType domain.WorkType) error {
	if !sel.Mode.IsValid() {
		return fmt.Errorf("%w: unknown selection mode %q", ErrInvalidInput, sel.Mode)
	}

	maxTimeIndex := domain.MinutesPerDay/workType.SlotStepMinutes() - 1

	for _, coord := range []domain.Coordinate{sel.Anchor, sel.Cursor} {
		if coord.Day < domain.MinDayIndex || coord.Day > domain.MaxDayIndex {
			return fmt.Errorf("%w: day index %d outside 0-6", ErrInvalidInput, coord.Day)
		}
		if coord.Time < 0 || coord.Time > maxTimeIndex {
			return fmt.Errorf("%w: time index %d outside 0-%d", ErrInvalidInput, coord.Time, maxTimeIndex)
		}
	}

	return nil
}
