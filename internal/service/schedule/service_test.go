package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cappie92/bookme-sub002/internal/domain"
	ruleRepo "github.com/Cappie92/bookme-sub002/internal/infra/storage/rule"
	"github.com/Cappie92/bookme-sub002/pkg/types"
)

// --- fakes ---

type fakeSlotRepo struct {
	slots map[string]domain.ScheduleSlot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]domain.ScheduleSlot)}
}

func (r *fakeSlotRepo) put(slot domain.ScheduleSlot) {
	r.slots[slot.Key().String()] = slot
}

func (r *fakeSlotRepo) GetByOwnerAndDateRange(_ context.Context, ownerID int64, from, to time.Time) ([]domain.ScheduleSlot, error) {
	result := make([]domain.ScheduleSlot, 0)
	for _, slot := range r.slots {
		if slot.OwnerID == ownerID && !slot.Date.Before(from) && !slot.Date.After(to) {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) UpsertBatch(_ context.Context, slots []domain.ScheduleSlot) (int, error) {
	for _, slot := range slots {
		r.put(slot)
	}
	return len(slots), nil
}

func (r *fakeSlotRepo) ClearFrom(_ context.Context, ownerID int64, from time.Time) (int, error) {
	cleared := 0
	for key, slot := range r.slots {
		if slot.OwnerID == ownerID && !slot.Date.Before(from) && slot.IsWorking {
			slot.IsWorking = false
			slot.HasConflict = false
			slot.ConflictType = domain.ConflictNone
			r.slots[key] = slot
			cleared++
		}
	}
	return cleared, nil
}

func (r *fakeSlotRepo) GetConflicted(_ context.Context, ownerID *int64, conflictType *domain.ConflictType, from time.Time) ([]domain.ScheduleSlot, error) {
	result := make([]domain.ScheduleSlot, 0)
	for _, slot := range r.slots {
		if !slot.HasConflict || slot.Date.Before(from) {
			continue
		}
		if ownerID != nil && slot.OwnerID != *ownerID {
			continue
		}
		if conflictType != nil && slot.ConflictType != *conflictType {
			continue
		}
		result = append(result, slot)
	}
	return result, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) GetActiveByOwnerAndDateRange(_ context.Context, ownerID int64, _, _ time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.OwnerID == ownerID && b.IsActive() {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeRuleRepo struct {
	rule *domain.RecurrenceRule
}

func (r *fakeRuleRepo) GetByOwner(_ context.Context, _ int64) (*domain.RecurrenceRule, error) {
	if r.rule == nil {
		return nil, ruleRepo.ErrRuleNotFound
	}
	return r.rule, nil
}

type fakeDismissalRepo struct {
	dismissed map[string]struct{}
}

func (r *fakeDismissalRepo) GetByOwner(_ context.Context, _ int64, _ time.Time) (map[string]struct{}, error) {
	if r.dismissed == nil {
		return map[string]struct{}{}, nil
	}
	return r.dismissed, nil
}

type fakeStaffClient struct {
	allowed bool
}

func (c *fakeStaffClient) CanManage(_ context.Context, _, _ int64) (bool, error) {
	return c.allowed, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTime struct {
	now time.Time
}

func (p *fakeTime) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- helpers ---

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func workingSlot(ownerID int64, dt time.Time, hour, minute int, workType domain.WorkType) domain.ScheduleSlot {
	return domain.ScheduleSlot{
		OwnerID:   ownerID,
		Date:      dt,
		Hour:      hour,
		Minute:    minute,
		IsWorking: true,
		WorkType:  workType,
	}
}

type fixture struct {
	svc           *Service
	slotRepo      *fakeSlotRepo
	bookingRepo   *fakeBookingRepo
	ruleRepo      *fakeRuleRepo
	dismissalRepo *fakeDismissalRepo
	staff         *fakeStaffClient
	clock         *fakeTime
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		slotRepo:      newFakeSlotRepo(),
		bookingRepo:   &fakeBookingRepo{},
		ruleRepo:      &fakeRuleRepo{},
		dismissalRepo: &fakeDismissalRepo{},
		staff:         &fakeStaffClient{allowed: true},
		// Понедельник
		clock: &fakeTime{now: date(2026, time.March, 2)},
	}

	f.svc = NewService(f.slotRepo, f.bookingRepo, f.ruleRepo, f.dismissalRepo, f.staff, fakeTxManager{}, noopLogger{})
	f.svc.timeProvider = f.clock

	return f
}

// --- tests ---

func TestGetWeekly(t *testing.T) {
	f := newFixture(t)

	monday := date(2026, time.March, 2)
	wednesday := date(2026, time.March, 4)
	f.slotRepo.put(workingSlot(1, monday, 9, 0, domain.WorkTypePersonal))
	f.slotRepo.put(workingSlot(1, monday, 9, 10, domain.WorkTypePersonal))
	f.slotRepo.put(workingSlot(1, wednesday, 14, 0, domain.WorkTypePersonal))
	// Чужой слот не попадает в выдачу
	f.slotRepo.put(workingSlot(2, monday, 9, 0, domain.WorkTypePersonal))

	week, err := f.svc.GetWeekly(context.Background(), 1, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, monday, week.WeekStart)
	require.Len(t, week.Days, 7)

	assert.Equal(t, monday, week.Days[0].Date)
	assert.Len(t, week.Days[0].Slots, 2)
	assert.Len(t, week.Days[2].Slots, 1)

	// Пустой день — пустой слайс, не nil
	assert.NotNil(t, week.Days[1].Slots)
	assert.Empty(t, week.Days[1].Slots)
}

func TestGetWeekly_WeekOffset(t *testing.T) {
	f := newFixture(t)

	nextMonday := date(2026, time.March, 9)
	f.slotRepo.put(workingSlot(1, nextMonday, 9, 0, domain.WorkTypePersonal))

	week, err := f.svc.GetWeekly(context.Background(), 1, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, nextMonday, week.WeekStart)
	assert.Len(t, week.Days[0].Slots, 1)
}

func TestGetMonthly(t *testing.T) {
	f := newFixture(t)

	f.slotRepo.put(workingSlot(1, date(2026, time.March, 2), 9, 0, domain.WorkTypePersonal))
	conflicted := workingSlot(1, date(2026, time.March, 10), 10, 0, domain.WorkTypeSalon)
	conflicted.HasConflict = true
	conflicted.ConflictType = domain.ConflictBooking
	f.slotRepo.put(conflicted)

	month, err := f.svc.GetMonthly(context.Background(), 1, 1, 2026, time.March)
	require.NoError(t, err)

	require.Len(t, month.Days, 2)
	assert.Equal(t, date(2026, time.March, 2), month.Days[0].Date)
	assert.True(t, month.Days[0].HasWorking)
	assert.False(t, month.Days[0].HasConflict)

	assert.Equal(t, date(2026, time.March, 10), month.Days[1].Date)
	assert.True(t, month.Days[1].HasConflict)
	assert.Equal(t, domain.WorkTypeSalon, month.Days[1].DominantWorkType)

	assert.Len(t, month.Slots, 2)
}

func TestGetMonthly_InvalidMonth(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetMonthly(context.Background(), 1, 1, 2026, time.Month(13))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClearFuture(t *testing.T) {
	f := newFixture(t)

	past := date(2026, time.February, 23)
	future := date(2026, time.March, 9)
	f.slotRepo.put(workingSlot(1, past, 9, 0, domain.WorkTypePersonal))
	f.slotRepo.put(workingSlot(1, future, 9, 0, domain.WorkTypePersonal))
	f.slotRepo.put(workingSlot(1, future, 9, 10, domain.WorkTypePersonal))

	result, err := f.svc.ClearFuture(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SlotsCleared)
	assert.Equal(t, 0, result.PreservedConflicts)

	// Прошлое не тронуто, будущее нерабочее
	assert.True(t, f.slotRepo.slots[domain.SlotKey{Date: past, Hour: 9, Minute: 0}.String()].IsWorking)
	assert.False(t, f.slotRepo.slots[domain.SlotKey{Date: future, Hour: 9, Minute: 0}.String()].IsWorking)
}

func TestClearFuture_PreservesBookedSlots(t *testing.T) {
	f := newFixture(t)

	future := date(2026, time.March, 9)
	f.slotRepo.put(workingSlot(1, future, 10, 0, domain.WorkTypePersonal))
	f.slotRepo.put(workingSlot(1, future, 10, 10, domain.WorkTypePersonal))
	f.slotRepo.put(workingSlot(1, future, 15, 0, domain.WorkTypePersonal))

	f.bookingRepo.bookings = []*domain.Booking{
		{ID: 1, OwnerID: 1, Date: future, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("10:20"), WorkType: domain.WorkTypePersonal, Status: domain.BookingStatusConfirmed},
	}

	result, err := f.svc.ClearFuture(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, result.SlotsCleared)
	assert.Equal(t, 2, result.PreservedConflicts)

	// Слоты под записью остались рабочими с флагом конфликта
	for _, minute := range []int{0, 10} {
		slot := f.slotRepo.slots[domain.SlotKey{Date: future, Hour: 10, Minute: minute}.String()]
		assert.True(t, slot.IsWorking, "minute %d", minute)
		assert.True(t, slot.HasConflict, "minute %d", minute)
		assert.Equal(t, domain.ConflictBooking, slot.ConflictType, "minute %d", minute)
	}

	// Слот вне записи освобожден
	assert.False(t, f.slotRepo.slots[domain.SlotKey{Date: future, Hour: 15, Minute: 0}.String()].IsWorking)
}

func TestGetRule(t *testing.T) {
	f := newFixture(t)

	f.ruleRepo.rule = &domain.RecurrenceRule{
		OwnerID:  1,
		Type:     domain.RuleTypeWeekdays,
		WorkType: domain.WorkTypePersonal,
	}

	rule, err := f.svc.GetRule(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RuleTypeWeekdays, rule.Type)
}

func TestGetRule_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetRule(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestGetConflicts(t *testing.T) {
	f := newFixture(t)

	future := date(2026, time.March, 9)
	for _, minute := range []int{0, 10, 20} {
		slot := workingSlot(1, future, 10, minute, domain.WorkTypePersonal)
		slot.HasConflict = true
		slot.ConflictType = domain.ConflictBooking
		f.slotRepo.put(slot)
	}

	days, err := f.svc.GetConflicts(context.Background(), 1, 1, false)
	require.NoError(t, err)

	// Смежные слоты слиты в один интервал 10:00-10:30
	require.Len(t, days, 1)
	require.Len(t, days[0].Conflicts, 1)
	assert.Equal(t, types.TimeString("10:00"), days[0].Conflicts[0].StartTime)
	assert.Equal(t, types.TimeString("10:30"), days[0].Conflicts[0].EndTime)
}

func TestGetConflicts_DismissedHidden(t *testing.T) {
	f := newFixture(t)

	future := date(2026, time.March, 9)
	slot := workingSlot(1, future, 10, 0, domain.WorkTypePersonal)
	slot.HasConflict = true
	slot.ConflictType = domain.ConflictBooking
	f.slotRepo.put(slot)

	f.dismissalRepo.dismissed = map[string]struct{}{
		slot.Key().String(): {},
	}

	days, err := f.svc.GetConflicts(context.Background(), 1, 1, false)
	require.NoError(t, err)
	assert.Empty(t, days)

	// includeDismissed возвращает и скрытые конфликты
	days, err = f.svc.GetConflicts(context.Background(), 1, 1, true)
	require.NoError(t, err)
	require.Len(t, days, 1)
}

func TestAccessDenied(t *testing.T) {
	f := newFixture(t)
	f.staff.allowed = false

	_, err := f.svc.GetWeekly(context.Background(), 2, 1, 0)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetMonthly(context.Background(), 2, 1, 2026, time.March)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.ClearFuture(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
