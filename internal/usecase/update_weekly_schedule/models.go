package update_weekly_schedule

import (
	"time"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// SlotPatch явное значение одного слота в bulk-редактировании
type SlotPatch struct {
	Date      time.Time
	Hour      int
	Minute    int
	IsWorking bool
}

// RectSelection прямоугольное выделение недельной сетки:
// якорь и курсор задают прямоугольник, режим — добавление или снятие
// рабочего времени для накрытых слотов
type RectSelection struct {
	Anchor     domain.Coordinate
	Cursor     domain.Coordinate
	WeekOffset int
	Mode       domain.SelectionMode
}

// Request модель запроса bulk-редактирования недельного расписания.
// Заполняется ровно одно из Slots / Selection.
type Request struct {
	CallerID  int64
	OwnerID   int64
	WorkType  domain.WorkType
	Slots     []SlotPatch
	Selection *RectSelection
}

// Response модель ответа: количество записанных слотов и конфликты,
// обнаруженные детектором при записи
type Response struct {
	SlotsWritten int
	Conflicts    []domain.DayConflicts
}
