package apply_schedule_rule

import (
	"sort"
	"time"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// buildCandidates строит полный набор слотов для записи в окне [from, to]:
//
//  1. для каждой даты окна рабочий интервал правила разворачивается
//     в рабочие слоты с шагом сетки типа занятости;
//  2. существующие рабочие или конфликтные слоты, которые правило больше
//     не диктует, становятся нерабочими кандидатами — новое окно атомарно
//     замещает прежнее;
//  3. слоты под активными записями клиентов, не попавшие в кандидаты,
//     добавляются как нерабочие кандидаты: детектор конфликтов превратит
//     их в рабочие слоты с флагом booking, сохранив претензию записи.
//
// Результат детерминированно упорядочен по ключам слотов.
func buildCandidates(
	ownerID int64,
	rule *domain.RecurrenceRule,
	from, to time.Time,
	existing map[string]domain.ScheduleSlot,
	bookings []*domain.Booking,
) []domain.ScheduleSlot {
	step := rule.WorkType.SlotStepMinutes()
	candidates := make(map[string]domain.ScheduleSlot)

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		tr, working := rule.WorkingRangeFor(date)
		if !working {
			continue
		}
		for _, key := range domain.RangeSlotKeys(date, tr, step) {
			candidates[key.String()] = domain.ScheduleSlot{
				OwnerID:      ownerID,
				Date:         key.Date,
				Hour:         key.Hour,
				Minute:       key.Minute,
				IsWorking:    true,
				WorkType:     rule.WorkType,
				ConflictType: domain.ConflictNone,
			}
		}
	}

	// Прежнее окно замещается целиком: всё, что было рабочим и больше
	// не диктуется правилом, выключается
	for encoded, slot := range existing {
		if !slot.IsWorking && !slot.HasConflict {
			continue
		}
		if _, ok := candidates[encoded]; ok {
			continue
		}
		candidates[encoded] = domain.ScheduleSlot{
			OwnerID:      ownerID,
			Date:         slot.Date,
			Hour:         slot.Hour,
			Minute:       slot.Minute,
			IsWorking:    false,
			WorkType:     slot.WorkType,
			ConflictType: domain.ConflictNone,
		}
	}

	// Время активных записей всегда попадает в кандидаты, чтобы детектор
	// конфликтов мог сохранить претензию записи
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		bookingKeys := domain.RangeSlotKeys(b.Date, domain.TimeRange{Start: b.StartTime, End: b.EndTime}, b.WorkType.SlotStepMinutes())
		for _, key := range bookingKeys {
			if key.Date.Before(from) || key.Date.After(to) {
				continue
			}
			if _, ok := candidates[key.String()]; ok {
				continue
			}
			candidates[key.String()] = domain.ScheduleSlot{
				OwnerID:      ownerID,
				Date:         key.Date,
				Hour:         key.Hour,
				Minute:       key.Minute,
				IsWorking:    false,
				WorkType:     b.WorkType,
				ConflictType: domain.ConflictNone,
			}
		}
	}

	return sortCandidates(candidates)
}

// sortCandidates возвращает кандидатов, упорядоченных по дате и времени
func sortCandidates(candidates map[string]domain.ScheduleSlot) []domain.ScheduleSlot {
	sorted := make([]domain.ScheduleSlot, 0, len(candidates))
	for _, slot := range candidates {
		sorted = append(sorted, slot)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key().Before(sorted[j].Key())
	})
	return sorted
}
