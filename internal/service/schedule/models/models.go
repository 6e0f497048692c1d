package models

import (
	"time"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// Slot представление слота расписания для ответов сервиса
type Slot struct {
	Key          string
	Date         time.Time
	Hour         int
	Minute       int
	IsWorking    bool
	WorkType     domain.WorkType
	HasConflict  bool
	ConflictType domain.ConflictType
}

// DaySlots слоты одного дня
type DaySlots struct {
	Date  time.Time
	Slots []Slot
}

// WeeklySchedule недельное расписание: 7 дней начиная с понедельника
type WeeklySchedule struct {
	OwnerID   int64
	WeekStart time.Time
	Days      []DaySlots
}

// DaySummary сводка одного дня месяца
type DaySummary struct {
	Date             time.Time
	HasWorking       bool
	HasConflict      bool
	DominantWorkType domain.WorkType
}

// MonthlySchedule месячная сводка плюс сырой список слотов для рендера календаря
type MonthlySchedule struct {
	OwnerID int64
	Year    int
	Month   time.Month
	Days    []DaySummary
	Slots   []Slot
}

// ClearFutureResult результат очистки будущего расписания
type ClearFutureResult struct {
	SlotsCleared       int
	PreservedConflicts int
}

// FromDomainSlot конвертирует доменный слот в модель ответа
func FromDomainSlot(slot domain.ScheduleSlot) Slot {
	return Slot{
		Key:          slot.Key().String(),
		Date:         slot.Date,
		Hour:         slot.Hour,
		Minute:       slot.Minute,
		IsWorking:    slot.IsWorking,
		WorkType:     slot.WorkType,
		HasConflict:  slot.HasConflict,
		ConflictType: slot.ConflictType,
	}
}

// FromDomainSlots конвертирует слайс доменных слотов
func FromDomainSlots(slots []domain.ScheduleSlot) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		result = append(result, FromDomainSlot(slot))
	}
	return result
}
