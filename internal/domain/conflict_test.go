package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cappie92/bookme-sub002/pkg/types"
)

func workingSlot(ownerID int64, day time.Time, hour, minute int, workType WorkType) ScheduleSlot {
	return ScheduleSlot{
		OwnerID:   ownerID,
		Date:      day,
		Hour:      hour,
		Minute:    minute,
		IsWorking: true,
		WorkType:  workType,
	}
}

func activeBooking(ownerID int64, day time.Time, start, end string, workType WorkType) *Booking {
	return &Booking{
		ID:        1,
		OwnerID:   ownerID,
		Date:      day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		WorkType:  workType,
		Status:    BookingStatusConfirmed,
	}
}

func TestClassifyCandidate_NoConflict(t *testing.T) {
	monday := date(2026, time.March, 2)
	candidate := workingSlot(1, monday, 9, 0, WorkTypePersonal)

	assert.Equal(t, ConflictNone, ClassifyCandidate(candidate, nil, nil))

	existing := workingSlot(1, monday, 9, 0, WorkTypePersonal)
	assert.Equal(t, ConflictNone, ClassifyCandidate(candidate, &existing, nil))
}

func TestClassifyCandidate_PersonalOverSalon(t *testing.T) {
	monday := date(2026, time.March, 2)
	candidate := workingSlot(1, monday, 9, 0, WorkTypePersonal)
	existing := workingSlot(1, monday, 9, 0, WorkTypeSalon)

	assert.Equal(t, ConflictPersonalSchedule, ClassifyCandidate(candidate, &existing, nil))
}

func TestClassifyCandidate_SalonOverPersonal(t *testing.T) {
	monday := date(2026, time.March, 2)
	candidate := workingSlot(1, monday, 9, 0, WorkTypeSalon)
	existing := workingSlot(1, monday, 9, 0, WorkTypePersonal)

	assert.Equal(t, ConflictSalonWork, ClassifyCandidate(candidate, &existing, nil))
}

func TestClassifyCandidate_BookingWins(t *testing.T) {
	monday := date(2026, time.March, 2)
	bookings := []*Booking{activeBooking(1, monday, "10:00", "10:30", WorkTypeSalon)}

	// Кандидат выключает слот под активной записью
	off := ScheduleSlot{OwnerID: 1, Date: monday, Hour: 10, Minute: 0, WorkType: WorkTypeSalon}
	assert.Equal(t, ConflictBooking, ClassifyCandidate(off, nil, bookings))

	// Кандидат переводит слот на другой тип занятости
	personal := workingSlot(1, monday, 10, 10, WorkTypePersonal)
	assert.Equal(t, ConflictBooking, ClassifyCandidate(personal, nil, bookings))

	// Совпадающий тип занятости записи конфликтом не считается
	salon := workingSlot(1, monday, 10, 0, WorkTypeSalon)
	assert.Equal(t, ConflictNone, ClassifyCandidate(salon, nil, bookings))
}

func TestClassifyCandidate_IgnoresInactiveAndForeignBookings(t *testing.T) {
	monday := date(2026, time.March, 2)

	cancelled := activeBooking(1, monday, "10:00", "10:30", WorkTypeSalon)
	cancelled.Status = BookingStatusCancelled
	foreign := activeBooking(2, monday, "10:00", "10:30", WorkTypeSalon)

	off := ScheduleSlot{OwnerID: 1, Date: monday, Hour: 10, Minute: 0}
	assert.Equal(t, ConflictNone, ClassifyCandidate(off, nil, []*Booking{cancelled, foreign}))
}

func TestApplyConflictPolicy_BookingPreserved(t *testing.T) {
	monday := date(2026, time.March, 2)
	bookings := []*Booking{activeBooking(1, monday, "10:00", "10:30", WorkTypeSalon)}

	// Попытка выключить слоты под записью
	candidates := []ScheduleSlot{
		{OwnerID: 1, Date: monday, Hour: 10, Minute: 0, WorkType: WorkTypeSalon},
		{OwnerID: 1, Date: monday, Hour: 10, Minute: 30, WorkType: WorkTypeSalon},
	}

	revised, conflicts := ApplyConflictPolicy(candidates, nil, bookings)

	require.Len(t, revised, 2)

	// Слот под записью принудительно рабочий с флагом
	assert.True(t, revised[0].IsWorking)
	assert.True(t, revised[0].HasConflict)
	assert.Equal(t, ConflictBooking, revised[0].ConflictType)
	assert.Equal(t, WorkTypeSalon, revised[0].WorkType)

	// Слот вне записи выключается без конфликта
	assert.False(t, revised[1].IsWorking)
	assert.False(t, revised[1].HasConflict)

	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictBooking, conflicts[0].ConflictType)
	assert.Equal(t, types.TimeString("10:00"), conflicts[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), conflicts[0].EndTime)
}

func TestApplyConflictPolicy_LastWriteWinsWithFlag(t *testing.T) {
	monday := date(2026, time.March, 2)
	existing := map[string]ScheduleSlot{}
	salon := workingSlot(1, monday, 9, 0, WorkTypeSalon)
	existing[salon.Key().String()] = salon

	candidates := []ScheduleSlot{workingSlot(1, monday, 9, 0, WorkTypePersonal)}

	revised, conflicts := ApplyConflictPolicy(candidates, existing, nil)

	require.Len(t, revised, 1)
	assert.True(t, revised[0].IsWorking)
	assert.Equal(t, WorkTypePersonal, revised[0].WorkType)
	assert.True(t, revised[0].HasConflict)
	assert.Equal(t, ConflictPersonalSchedule, revised[0].ConflictType)

	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictPersonalSchedule, conflicts[0].ConflictType)
}

func TestCoalesceConflicts_MergesAdjacentRuns(t *testing.T) {
	monday := date(2026, time.March, 2)

	slots := []ScheduleSlot{}
	for _, minute := range []int{0, 10, 20} {
		s := workingSlot(1, monday, 10, minute, WorkTypePersonal)
		s.HasConflict = true
		s.ConflictType = ConflictBooking
		slots = append(slots, s)
	}
	// Разрыв: 10:30 пропущен, 10:40 отдельный интервал
	gap := workingSlot(1, monday, 10, 40, WorkTypePersonal)
	gap.HasConflict = true
	gap.ConflictType = ConflictBooking
	slots = append(slots, gap)

	conflicts := CoalesceConflicts(slots)

	require.Len(t, conflicts, 2)
	assert.Equal(t, types.TimeString("10:00"), conflicts[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), conflicts[0].EndTime)
	assert.Equal(t, types.TimeString("10:40"), conflicts[1].StartTime)
	assert.Equal(t, types.TimeString("10:50"), conflicts[1].EndTime)
}

func TestCoalesceConflicts_Empty(t *testing.T) {
	assert.Empty(t, CoalesceConflicts(nil))
}

func TestGroupConflictsByDate(t *testing.T) {
	monday := date(2026, time.March, 2)
	tuesday := monday.AddDate(0, 0, 1)

	conflicts := []Conflict{
		{Date: tuesday, ConflictType: ConflictBooking},
		{Date: monday, ConflictType: ConflictSalonWork},
		{Date: tuesday, ConflictType: ConflictPersonalSchedule},
	}

	grouped := GroupConflictsByDate(conflicts)

	require.Len(t, grouped, 2)
	assert.Equal(t, monday, grouped[0].Date)
	assert.Len(t, grouped[0].Conflicts, 1)
	assert.Equal(t, tuesday, grouped[1].Date)
	assert.Len(t, grouped[1].Conflicts, 2)
}
