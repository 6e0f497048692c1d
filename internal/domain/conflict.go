package domain

import (
	"sort"
	"time"

	"github.com/Cappie92/bookme-sub002/pkg/types"
)

// Conflict производное представление наложения претензий на время.
// Не хранится отдельно от слотов, которые его породили.
type Conflict struct {
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	ConflictType ConflictType
	WorkType     WorkType
}

// DayConflicts конфликты одной даты, для группировки в ответах API
type DayConflicts struct {
	Date      time.Time
	Conflicts []Conflict
}

// ResolutionAction действие разрешения конфликта
type ResolutionAction string

const (
	ResolutionKeep   ResolutionAction = "keep"
	ResolutionRemove ResolutionAction = "remove"
	ResolutionIgnore ResolutionAction = "ignore"
)

// IsValid проверяет допустимость значения ResolutionAction
func (a ResolutionAction) IsValid() bool {
	return a == ResolutionKeep || a == ResolutionRemove || a == ResolutionIgnore
}

// ClassifyCandidate классифицирует конфликт, который возникнет при записи
// candidate поверх текущего состояния existing (nil = ключ отсутствует)
// с учетом активных записей клиентов.
//
// Правила:
//   - активная запись клиента на слоте, который кандидат делает нерабочим
//     или переводит на другой тип занятости → ConflictBooking;
//   - личный рабочий слот поверх салонной смены → ConflictPersonalSchedule;
//   - салонная смена поверх личного рабочего слота → ConflictSalonWork.
func ClassifyCandidate(candidate ScheduleSlot, existing *ScheduleSlot, bookings []*Booking) ConflictType {
	// Записи клиентов всегда выигрывают у любой мутации расписания
	for _, b := range bookings {
		if !b.IsActive() || b.OwnerID != candidate.OwnerID {
			continue
		}
		if !b.CoversSlot(candidate.Date, candidate.Hour, candidate.Minute) {
			continue
		}
		if !candidate.IsWorking || candidate.WorkType != b.WorkType {
			return ConflictBooking
		}
	}

	if existing == nil || !existing.IsWorking {
		return ConflictNone
	}

	if candidate.IsWorking && candidate.WorkType != existing.WorkType {
		if candidate.WorkType == WorkTypePersonal {
			return ConflictPersonalSchedule
		}
		return ConflictSalonWork
	}

	return ConflictNone
}

// ApplyConflictPolicy прогоняет кандидатов на запись через детектор конфликтов
// и возвращает фактические значения для записи вместе со списком конфликтов.
//
// Политика tie-break: существующая запись клиента никогда не затирается —
// такой слот остается рабочим с выставленным флагом конфликта booking.
// Остальные конфликтные слоты записываются по принципу
// "последняя запись выигрывает" с флагом конфликта.
func ApplyConflictPolicy(candidates []ScheduleSlot, existing map[string]ScheduleSlot, bookings []*Booking) ([]ScheduleSlot, []Conflict) {
	revised := make([]ScheduleSlot, 0, len(candidates))
	flagged := make([]ScheduleSlot, 0)

	for _, candidate := range candidates {
		var existingSlot *ScheduleSlot
		if slot, ok := existing[candidate.Key().String()]; ok {
			existingSlot = &slot
		}

		conflictType := ClassifyCandidate(candidate, existingSlot, bookings)

		switch conflictType {
		case ConflictNone:
			candidate.HasConflict = false
			candidate.ConflictType = ConflictNone

		case ConflictBooking:
			// Сохраняем претензию записи на это время: слот остается рабочим,
			// тип занятости претендента не меняется — источник конфликта
			// виден по conflict_type
			candidate.IsWorking = true
			candidate.HasConflict = true
			candidate.ConflictType = ConflictBooking

		default:
			candidate.HasConflict = true
			candidate.ConflictType = conflictType
		}

		revised = append(revised, candidate)
		if candidate.HasConflict {
			flagged = append(flagged, candidate)
		}
	}

	return revised, CoalesceConflicts(flagged)
}

// CoalesceConflicts сворачивает конфликтные слоты в интервальные конфликты:
// смежные слоты одной даты, одного типа конфликта и типа занятости
// объединяются в один Conflict c общим интервалом времени.
func CoalesceConflicts(slots []ScheduleSlot) []Conflict {
	if len(slots) == 0 {
		return []Conflict{}
	}

	sorted := make([]ScheduleSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.ConflictType != b.ConflictType {
			return a.ConflictType < b.ConflictType
		}
		return a.StartMinutes() < b.StartMinutes()
	})

	conflicts := make([]Conflict, 0)
	var current *Conflict
	var currentEnd int

	for _, slot := range sorted {
		step := slot.WorkType.SlotStepMinutes()
		start := slot.StartMinutes()

		sameRun := current != nil &&
			current.Date.Equal(slot.Date) &&
			current.ConflictType == slot.ConflictType &&
			current.WorkType == slot.WorkType &&
			start == currentEnd

		if sameRun {
			currentEnd = start + step
			end, _ := types.NewTimeStringFromMinutes(currentEnd)
			current.EndTime = end
			continue
		}

		if current != nil {
			conflicts = append(conflicts, *current)
		}

		startTS, _ := types.NewTimeStringFromMinutes(start)
		endTS, _ := types.NewTimeStringFromMinutes(start + step)
		current = &Conflict{
			Date:         slot.Date,
			StartTime:    startTS,
			EndTime:      endTS,
			ConflictType: slot.ConflictType,
			WorkType:     slot.WorkType,
		}
		currentEnd = start + step
	}

	if current != nil {
		conflicts = append(conflicts, *current)
	}

	return conflicts
}

// GroupConflictsByDate группирует конфликты по датам, даты по возрастанию
func GroupConflictsByDate(conflicts []Conflict) []DayConflicts {
	byDate := make(map[string][]Conflict)
	dates := make([]string, 0)

	for _, c := range conflicts {
		key := c.Date.Format(DateFormat)
		if _, ok := byDate[key]; !ok {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], c)
	}

	sort.Strings(dates)

	grouped := make([]DayConflicts, 0, len(dates))
	for _, d := range dates {
		date, _ := time.Parse(DateFormat, d)
		grouped = append(grouped, DayConflicts{Date: date, Conflicts: byDate[d]})
	}

	return grouped
}
