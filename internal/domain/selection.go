package domain

import "time"

// SelectionMode режим прямоугольного выделения
type SelectionMode string

const (
	SelectionModeSelect   SelectionMode = "select"
	SelectionModeDeselect SelectionMode = "deselect"
)

// IsValid проверяет допустимость значения SelectionMode
func (m SelectionMode) IsValid() bool {
	return m == SelectionModeSelect || m == SelectionModeDeselect
}

// Coordinate координата ячейки недельной сетки:
// Day — индекс дня недели 0-6 (понедельник = 0),
// Time — линейный индекс слота внутри дня при заданном шаге сетки.
type Coordinate struct {
	Day  int
	Time int
}

// Selection результат выделения: набор ключей и режим применения
type Selection struct {
	Keys []SlotKey
	Mode SelectionMode
}

// SelectRange возвращает ключи слотов, накрытые прямоугольником между
// якорем и курсором: [min(day), max(day)] x [min(time), max(time)].
// Обе граничные ячейки входят в результат. Функция симметрична относительно
// перестановки якоря и курсора; при anchor == cursor возвращает ровно один ключ.
func SelectRange(anchor, cursor Coordinate, weekStart time.Time, stepMinutes int) []SlotKey {
	dayLo, dayHi := minMax(anchor.Day, cursor.Day)
	timeLo, timeHi := minMax(anchor.Time, cursor.Time)

	week := DateOnly(weekStart)
	keys := make([]SlotKey, 0, (dayHi-dayLo+1)*(timeHi-timeLo+1))

	for day := dayLo; day <= dayHi; day++ {
		date := week.AddDate(0, 0, day)
		for t := timeLo; t <= timeHi; t++ {
			m := t * stepMinutes
			if m >= MinutesPerDay {
				break
			}
			keys = append(keys, SlotKey{Date: date, Hour: m / 60, Minute: m % 60})
		}
	}

	return keys
}

// Apply применяет выделение к существующему набору ключей:
// select добавляет накрытые ключи, deselect удаляет их.
// Возвращает тот же набор для сцепления вызовов.
func (s Selection) Apply(current map[string]SlotKey) map[string]SlotKey {
	for _, key := range s.Keys {
		if s.Mode == SelectionModeDeselect {
			delete(current, key.String())
		} else {
			current[key.String()] = key
		}
	}
	return current
}

// ToggleKey переключает принадлежность одного ключа набору.
// Одиночный клик (якорь == курсор) в интерактивном редактировании.
func ToggleKey(current map[string]SlotKey, key SlotKey) {
	encoded := key.String()
	if _, ok := current[encoded]; ok {
		delete(current, encoded)
	} else {
		current[encoded] = key
	}
}

// TimeIndex возвращает линейный индекс слота внутри дня для шага сетки
func TimeIndex(hour, minute, stepMinutes int) int {
	return (hour*60 + minute) / stepMinutes
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
