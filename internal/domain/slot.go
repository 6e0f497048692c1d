package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WorkType источник рабочего статуса слота.
// Личный график и салонная смена взаимоисключающие претензии на одно время.
type WorkType string

const (
	WorkTypePersonal WorkType = "personal"
	WorkTypeSalon    WorkType = "salon"
)

// IsValid проверяет допустимость значения WorkType
func (w WorkType) IsValid() bool {
	return w == WorkTypePersonal || w == WorkTypeSalon
}

// SlotStepMinutes возвращает шаг сетки слотов для типа занятости
func (w WorkType) SlotStepMinutes() int {
	if w == WorkTypeSalon {
		return SalonSlotStepMinutes
	}
	return PersonalSlotStepMinutes
}

// ConflictType классификация конфликта на слоте
type ConflictType string

const (
	ConflictNone             ConflictType = "none"
	ConflictPersonalSchedule ConflictType = "personal_schedule"
	ConflictSalonWork        ConflictType = "salon_work"
	ConflictBooking          ConflictType = "booking"
)

// ScheduleSlot атомарная единица расписания работника.
// Естественный ключ — (owner_id, date, hour, minute); хранение разреженное,
// отсутствие записи читается как нерабочее время без конфликта.
type ScheduleSlot struct {
	OwnerID      int64
	Date         time.Time // только дата, время обнулено
	Hour         int
	Minute       int
	IsWorking    bool
	WorkType     WorkType
	HasConflict  bool
	ConflictType ConflictType

	UpdatedAt time.Time
}

// Key возвращает ключ слота
func (s *ScheduleSlot) Key() SlotKey {
	return SlotKey{Date: s.Date, Hour: s.Hour, Minute: s.Minute}
}

// StartTime возвращает время начала слота в минутах с начала суток
func (s *ScheduleSlot) StartMinutes() int {
	return s.Hour*60 + s.Minute
}

// DefaultSlot слот по умолчанию для отсутствующего ключа:
// нерабочий, без конфликта
func DefaultSlot(ownerID int64, key SlotKey) ScheduleSlot {
	return ScheduleSlot{
		OwnerID:      ownerID,
		Date:         key.Date,
		Hour:         key.Hour,
		Minute:       key.Minute,
		IsWorking:    false,
		WorkType:     WorkTypePersonal,
		HasConflict:  false,
		ConflictType: ConflictNone,
	}
}

// SlotKey канонический адрес слота внутри расписания одного работника
type SlotKey struct {
	Date   time.Time
	Hour   int
	Minute int
}

// ErrInvalidSlotKey возвращается при разборе некорректного ключа слота
var ErrInvalidSlotKey = errors.New("domain: invalid slot key")

// String кодирует ключ в каноническую строку "YYYY-MM-DD_{hour}_{minute}".
// Формат используется и как ключ карты, и как wire-представление.
func (k SlotKey) String() string {
	return fmt.Sprintf("%s_%d_%d", k.Date.Format(DateFormat), k.Hour, k.Minute)
}

// Before возвращает true, если k адресует более раннее время, чем other
func (k SlotKey) Before(other SlotKey) bool {
	if !k.Date.Equal(other.Date) {
		return k.Date.Before(other.Date)
	}
	if k.Hour != other.Hour {
		return k.Hour < other.Hour
	}
	return k.Minute < other.Minute
}

// ParseSlotKey разбирает каноническую строку ключа слота.
// Строгая обратная операция к SlotKey.String.
func ParseSlotKey(s string) (SlotKey, error) {
	parts := strings.Split(s, "_")
	if len(parts) != 3 {
		return SlotKey{}, fmt.Errorf("%w: %q", ErrInvalidSlotKey, s)
	}

	date, err := time.Parse(DateFormat, parts[0])
	if err != nil {
		return SlotKey{}, fmt.Errorf("%w: bad date in %q", ErrInvalidSlotKey, s)
	}

	hour, err := strconv.Atoi(parts[1])
	if err != nil || hour < 0 || hour > 23 {
		return SlotKey{}, fmt.Errorf("%w: bad hour in %q", ErrInvalidSlotKey, s)
	}

	minute, err := strconv.Atoi(parts[2])
	if err != nil || minute < 0 || minute > 59 {
		return SlotKey{}, fmt.Errorf("%w: bad minute in %q", ErrInvalidSlotKey, s)
	}

	return SlotKey{Date: date, Hour: hour, Minute: minute}, nil
}

// DateOnly обнуляет компонент времени, оставляя календарную дату в UTC
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayNumber возвращает номер дня недели 1-7, понедельник = 1
func WeekdayNumber(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7 // Sunday
	}
	return wd
}

// WeekStart возвращает понедельник недели, в которую попадает t
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	return d.AddDate(0, 0, -(WeekdayNumber(d) - 1))
}
