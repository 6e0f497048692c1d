package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cappie92/bookme-sub002/pkg/types"
)

func tr(start, end string) TimeRange {
	return TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func TestWorkingRangeFor_Weekdays(t *testing.T) {
	rule := RecurrenceRule{
		Type:     RuleTypeWeekdays,
		Weekdays: map[int]TimeRange{1: tr("09:00", "18:00")},
	}

	monday := date(2026, time.March, 2)

	got, ok := rule.WorkingRangeFor(monday)
	require.True(t, ok)
	assert.Equal(t, tr("09:00", "18:00"), got)

	// Остальные дни недели нерабочие
	for offset := 1; offset < 7; offset++ {
		_, ok := rule.WorkingRangeFor(monday.AddDate(0, 0, offset))
		assert.False(t, ok, "offset %d", offset)
	}
}

func TestWorkingRangeFor_Monthdays(t *testing.T) {
	rule := RecurrenceRule{
		Type:      RuleTypeMonthdays,
		Monthdays: map[int]TimeRange{1: tr("10:00", "14:00"), 15: tr("12:00", "20:00")},
	}

	got, ok := rule.WorkingRangeFor(date(2026, time.April, 15))
	require.True(t, ok)
	assert.Equal(t, tr("12:00", "20:00"), got)

	_, ok = rule.WorkingRangeFor(date(2026, time.April, 16))
	assert.False(t, ok)

	// Правило действует в каждом месяце
	_, ok = rule.WorkingRangeFor(date(2026, time.May, 1))
	assert.True(t, ok)
}

func TestWorkingRangeFor_Shift(t *testing.T) {
	start := date(2026, time.March, 2)
	rule := RecurrenceRule{
		Type: RuleTypeShift,
		Shift: &ShiftPattern{
			WorkDays:  2,
			RestDays:  1,
			StartDate: start,
			Time:      tr("08:00", "20:00"),
		},
	}

	// Цикл 2/1: D и D+1 рабочие, D+2 выходной, дальше по кругу
	expected := []bool{true, true, false, true, true, false, true}
	for offset, want := range expected {
		_, ok := rule.WorkingRangeFor(start.AddDate(0, 0, offset))
		assert.Equal(t, want, ok, "offset %d", offset)
	}
}

func TestWorkingRangeFor_ShiftBeforeStartDate(t *testing.T) {
	start := date(2026, time.March, 4)
	rule := RecurrenceRule{
		Type: RuleTypeShift,
		Shift: &ShiftPattern{
			WorkDays:  2,
			RestDays:  2,
			StartDate: start,
			Time:      tr("08:00", "20:00"),
		},
	}

	// Даты до якоря продолжают цикл назад без сдвига фазы
	_, ok := rule.WorkingRangeFor(start.AddDate(0, 0, -1))
	assert.False(t, ok)
	_, ok = rule.WorkingRangeFor(start.AddDate(0, 0, -2))
	assert.False(t, ok)
	_, ok = rule.WorkingRangeFor(start.AddDate(0, 0, -3))
	assert.True(t, ok)
	_, ok = rule.WorkingRangeFor(start.AddDate(0, 0, -4))
	assert.True(t, ok)
}

func TestRangeSlotKeys_PersonalGrid(t *testing.T) {
	monday := date(2026, time.March, 2)

	keys := RangeSlotKeys(monday, tr("09:00", "18:00"), PersonalSlotStepMinutes)

	// 9 часов по 6 слотов: 09:00 ... 17:50
	require.Len(t, keys, 54)
	assert.Equal(t, SlotKey{Date: monday, Hour: 9, Minute: 0}, keys[0])
	assert.Equal(t, SlotKey{Date: monday, Hour: 17, Minute: 50}, keys[53])
}

func TestRangeSlotKeys_SalonGrid(t *testing.T) {
	monday := date(2026, time.March, 2)

	keys := RangeSlotKeys(monday, tr("10:00", "12:00"), SalonSlotStepMinutes)

	require.Len(t, keys, 4)
	assert.Equal(t, SlotKey{Date: monday, Hour: 11, Minute: 30}, keys[3])
}

func TestRangeSlotKeys_MidnightEnd(t *testing.T) {
	monday := date(2026, time.March, 2)

	// "24:00" — эксклюзивный конец суток
	keys := RangeSlotKeys(monday, tr("23:00", "24:00"), PersonalSlotStepMinutes)

	require.Len(t, keys, 6)
	assert.Equal(t, SlotKey{Date: monday, Hour: 23, Minute: 50}, keys[5])
}

func TestRangeSlotKeys_InvalidRange(t *testing.T) {
	monday := date(2026, time.March, 2)

	assert.Empty(t, RangeSlotKeys(monday, tr("18:00", "09:00"), 10))
	assert.Empty(t, RangeSlotKeys(monday, TimeRange{}, 10))
	assert.Empty(t, RangeSlotKeys(monday, tr("09:00", "10:00"), 0))
}
