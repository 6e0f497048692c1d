package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectRange_SingleCell(t *testing.T) {
	monday := date(2026, time.March, 2)
	coord := Coordinate{Day: 0, Time: 54} // 09:00 при шаге 10 минут

	keys := SelectRange(coord, coord, monday, 10)

	require.Len(t, keys, 1)
	assert.Equal(t, SlotKey{Date: monday, Hour: 9, Minute: 0}, keys[0])
}

func TestSelectRange_Rectangle(t *testing.T) {
	monday := date(2026, time.March, 2)

	// Пн-Ср, 09:00-09:30 при шаге 10 минут: 3 дня x 3 строки
	keys := SelectRange(
		Coordinate{Day: 0, Time: 54},
		Coordinate{Day: 2, Time: 56},
		monday, 10,
	)

	require.Len(t, keys, 9)
	assert.Equal(t, SlotKey{Date: monday, Hour: 9, Minute: 0}, keys[0])
	assert.Equal(t, SlotKey{Date: monday.AddDate(0, 0, 2), Hour: 9, Minute: 20}, keys[8])
}

func TestSelectRange_Symmetric(t *testing.T) {
	monday := date(2026, time.March, 2)
	anchor := Coordinate{Day: 4, Time: 60}
	cursor := Coordinate{Day: 1, Time: 48}

	forward := SelectRange(anchor, cursor, monday, 10)
	backward := SelectRange(cursor, anchor, monday, 10)

	assert.Equal(t, forward, backward)
}

func TestSelectRange_CapsAtEndOfDay(t *testing.T) {
	monday := date(2026, time.March, 2)

	// Индексы за пределами суток отбрасываются
	keys := SelectRange(
		Coordinate{Day: 0, Time: 142},
		Coordinate{Day: 0, Time: 200},
		monday, 10,
	)

	require.Len(t, keys, 2)
	assert.Equal(t, SlotKey{Date: monday, Hour: 23, Minute: 40}, keys[0])
	assert.Equal(t, SlotKey{Date: monday, Hour: 23, Minute: 50}, keys[1])
}

func TestSelectRange_SalonStep(t *testing.T) {
	monday := date(2026, time.March, 2)

	// Салонная сетка: шаг 30 минут, индекс 20 = 10:00
	keys := SelectRange(
		Coordinate{Day: 0, Time: 20},
		Coordinate{Day: 0, Time: 21},
		monday, 30,
	)

	require.Len(t, keys, 2)
	assert.Equal(t, SlotKey{Date: monday, Hour: 10, Minute: 0}, keys[0])
	assert.Equal(t, SlotKey{Date: monday, Hour: 10, Minute: 30}, keys[1])
}

func TestSelection_Apply(t *testing.T) {
	monday := date(2026, time.March, 2)
	current := map[string]SlotKey{}

	selected := SelectRange(Coordinate{Day: 0, Time: 0}, Coordinate{Day: 0, Time: 2}, monday, 10)
	Selection{Keys: selected, Mode: SelectionModeSelect}.Apply(current)
	assert.Len(t, current, 3)

	deselected := SelectRange(Coordinate{Day: 0, Time: 1}, Coordinate{Day: 0, Time: 2}, monday, 10)
	Selection{Keys: deselected, Mode: SelectionModeDeselect}.Apply(current)
	assert.Len(t, current, 1)
	assert.Contains(t, current, SlotKey{Date: monday, Hour: 0, Minute: 0}.String())
}

func TestToggleKey(t *testing.T) {
	monday := date(2026, time.March, 2)
	key := SlotKey{Date: monday, Hour: 12, Minute: 30}
	current := map[string]SlotKey{}

	ToggleKey(current, key)
	assert.Contains(t, current, key.String())

	ToggleKey(current, key)
	assert.NotContains(t, current, key.String())
}

func TestTimeIndex(t *testing.T) {
	assert.Equal(t, 54, TimeIndex(9, 0, 10))
	assert.Equal(t, 20, TimeIndex(10, 0, 30))
	assert.Equal(t, 0, TimeIndex(0, 0, 10))
}
