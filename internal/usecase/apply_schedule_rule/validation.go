package apply_schedule_rule

import (
	"fmt"
	"time"

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
	return nil
}

// validateRule валидирует правило повторяемости до любой записи.
// Некорректное правило отклоняется целиком — частичного состояния не остается.
func validateRule(rule *domain.RecurrenceRule, now time.Time) error {
	if !rule.Type.IsValid() {
		return fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, rule.Type)
	}
	if !rule.WorkType.IsValid() {
		return fmt.Errorf("%w: unknown work type %q", ErrInvalidRule, rule.WorkType)
	}

	if rule.ValidUntil.IsZero() {
		return fmt.Errorf("%w: validUntil is required", ErrInvalidRule)
	}
	if domain.DateOnly(rule.ValidUntil).Before(domain.DateOnly(now)) {
		return fmt.Errorf("%w: validUntil is in the past", ErrInvalidRule)
	}

	switch rule.Type {
	case domain.RuleTypeWeekdays:
		if len(rule.Weekdays) == 0 {
			return fmt.Errorf("%w: weekdays rule has no days", ErrInvalidRule)
		}
		for day, tr := range rule.Weekdays {
			if day < domain.MinWeekdayNumber || day > domain.MaxWeekdayNumber {
				return fmt.Errorf("%w: weekday %d outside 1-7", ErrInvalidRule, day)
			}
			if err := validateTimeRange(tr, fmt.Sprintf("weekday %d", day)); err != nil {
				return err
			}
		}

	case domain.RuleTypeMonthdays:
		if len(rule.Monthdays) == 0 {
			return fmt.Errorf("%w: monthdays rule has no days", ErrInvalidRule)
		}
		for day, tr := range rule.Monthdays {
			if day < domain.MinMonthdayNumber || day > domain.MaxMonthdayNumber {
				return fmt.Errorf("%w: monthday %d outside 1-31", ErrInvalidRule, day)
			}
			if err := validateTimeRange(tr, fmt.Sprintf("monthday %d", day)); err != nil {
				return err
			}
		}

	case domain.RuleTypeShift:
		if rule.Shift == nil {
			return fmt.Errorf("%w: shift rule has no pattern", ErrInvalidRule)
		}
		if rule.Shift.WorkDays < domain.MinShiftDays || rule.Shift.WorkDays > domain.MaxShiftDays {
			return fmt.Errorf("%w: shift workDays must be 1-31", ErrInvalidRule)
		}
		if rule.Shift.RestDays < domain.MinShiftDays || rule.Shift.RestDays > domain.MaxShiftDays {
			return fmt.Errorf("%w: shift restDays must be 1-31", ErrInvalidRule)
		}
		if rule.Shift.StartDate.IsZero() {
			return fmt.Errorf("%w: shift startDate is required", ErrInvalidRule)
		}
		if err := validateTimeRange(rule.Shift.Time, "shift time"); err != nil {
			return err
		}
	}

	return nil
}

// validateTimeRange проверяет корректность интервала: start строго раньше end
func validateTimeRange(tr domain.TimeRange, field string) error {
	if tr.Start.IsZero() || tr.End.IsZero() {
		return fmt.Errorf("%w: %s time range is incomplete", ErrInvalidRule, field)
	}
	if !tr.Start.IsBefore(tr.End) {
		return fmt.Errorf("%w: %s start %s is not before end %s", ErrInvalidRule, field, tr.Start, tr.End)
	}
	return nil
}

// materializationWindow возвращает окно записи [сегодня, validUntil],
// ограниченное MaxRuleWindowDays. Материализация никогда не трогает
// прошлые даты, даже если якорь сменного графика в прошлом.
func materializationWindow(now, validUntil time.Time) (time.Time, time.Time) {
	from := domain.DateOnly(now)
	to := domain.DateOnly(validUntil)

	cap := from.AddDate(0, 0, domain.MaxRuleWindowDays-1)
	if to.After(cap) {
		to = cap
	}

	return from, to
}
