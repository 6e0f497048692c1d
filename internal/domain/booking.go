package domain

import (
	"time"

	"github.com/Cappie92/bookme-sub002/pkg/types"
)

// BookingStatus статус записи клиента
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking запись клиента — внешняя сущность подсистемы бронирования.
// Планировщик расписания её только читает и никогда не изменяет.
type Booking struct {
	ID        int64
	OwnerID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	WorkType  WorkType
	Status    BookingStatus
}

// IsActive возвращает true, если запись удерживает своё время.
// Завершенные и отмененные записи слоты не блокируют.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// CoversSlot возвращает true, если запись накрывает слот, начинающийся
// в указанные час и минуту той же даты. Интервал записи полуоткрытый:
// запись 10:00-10:30 накрывает слоты 10:00, 10:10, 10:20, но не 10:30.
func (b *Booking) CoversSlot(date time.Time, hour, minute int) bool {
	if !DateOnly(b.Date).Equal(DateOnly(date)) {
		return false
	}
	slotMinutes := hour*60 + minute
	return slotMinutes >= b.StartTime.Minutes() && slotMinutes < b.EndTime.Minutes()
}
