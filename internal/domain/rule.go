package domain

import (
	"time"

	"github.com/Cappie92/bookme-sub002/pkg/types"
)

// RuleType вариант правила повторяемости
type RuleType string

const (
	RuleTypeWeekdays  RuleType = "weekdays"
	RuleTypeMonthdays RuleType = "monthdays"
	RuleTypeShift     RuleType = "shift"
)

// IsValid проверяет допустимость значения RuleType
func (t RuleType) IsValid() bool {
	return t == RuleTypeWeekdays || t == RuleTypeMonthdays || t == RuleTypeShift
}

// TimeRange полуоткрытый интервал [Start, End) внутри одного дня
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid возвращает true, если интервал непустой и корректно упорядочен
func (r TimeRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && r.Start.IsBefore(r.End)
}

// ShiftPattern сменный график: WorkDays рабочих дней, затем RestDays выходных,
// цикл заякорен на StartDate. Time — рабочий интервал внутри рабочего дня.
type ShiftPattern struct {
	WorkDays  int
	RestDays  int
	StartDate time.Time
	Time      TimeRange
}

// RecurrenceRule декларативное правило повторяемости расписания.
// Ровно один из вариантов (Weekdays / Monthdays / Shift) заполнен,
// в соответствии с Type.
type RecurrenceRule struct {
	OwnerID    int64
	Type       RuleType
	Weekdays   map[int]TimeRange // 1-7, понедельник = 1
	Monthdays  map[int]TimeRange // 1-31
	Shift      *ShiftPattern
	WorkType   WorkType
	ValidUntil time.Time

	UpdatedAt time.Time
}

// WorkingRangeFor возвращает рабочий интервал правила на указанную дату.
// Второе значение false означает полностью нерабочий день.
func (r *RecurrenceRule) WorkingRangeFor(date time.Time) (TimeRange, bool) {
	switch r.Type {
	case RuleTypeWeekdays:
		tr, ok := r.Weekdays[WeekdayNumber(date)]
		return tr, ok

	case RuleTypeMonthdays:
		tr, ok := r.Monthdays[date.Day()]
		return tr, ok

	case RuleTypeShift:
		if r.Shift == nil {
			return TimeRange{}, false
		}
		cycle := r.Shift.WorkDays + r.Shift.RestDays
		if cycle <= 0 {
			return TimeRange{}, false
		}
		offset := int(DateOnly(date).Sub(DateOnly(r.Shift.StartDate)).Hours()/24) % cycle
		if offset < 0 {
			offset += cycle
		}
		if offset < r.Shift.WorkDays {
			return r.Shift.Time, true
		}
		return TimeRange{}, false

	default:
		return TimeRange{}, false
	}
}

// RangeSlotKeys разворачивает интервал времени в ключи слотов на дату
// с указанным шагом сетки. Конец интервала эксклюзивный: интервал
// 09:00-18:00 с шагом 10 минут дает слоты 09:00 ... 17:50.
func RangeSlotKeys(date time.Time, tr TimeRange, stepMinutes int) []SlotKey {
	if !tr.IsValid() || stepMinutes <= 0 {
		return nil
	}

	d := DateOnly(date)
	keys := make([]SlotKey, 0, (tr.End.Minutes()-tr.Start.Minutes())/stepMinutes)

	for m := tr.Start.Minutes(); m < tr.End.Minutes(); m += stepMinutes {
		keys = append(keys, SlotKey{Date: d, Hour: m / 60, Minute: m % 60})
	}

	return keys
}
