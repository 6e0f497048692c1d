package resolve_conflict

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// --- fakes ---

type fakeSlotRepo struct {
	slots map[string]domain.ScheduleSlot
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[string]domain.ScheduleSlot)}
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
		r.slots[slot.Key().String()] = slot
	}
	return len(slots), nil
}

type fakeDismissalRepo struct {
	dismissed map[string]struct{}
}

func newFakeDismissalRepo() *fakeDismissalRepo {
	return &fakeDismissalRepo{dismissed: make(map[string]struct{})}
}

func (r *fakeDismissalRepo) Add(_ context.Context, _ int64, keys []domain.SlotKey) error {
	for _, key := range keys {
		r.dismissed[key.String()] = struct{}{}
	}
	return nil
}

func (r *fakeDismissalRepo) GetByOwner(_ context.Context, _ int64, _ time.Time) (map[string]struct{}, error) {
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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- helpers ---

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	uc            *UseCase
	slotRepo      *fakeSlotRepo
	dismissalRepo *fakeDismissalRepo
	staff         *fakeStaffClient
	day           time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	slotRepo := newFakeSlotRepo()
	dismissalRepo := newFakeDismissalRepo()
	staff := &fakeStaffClient{allowed: true}

	uc := NewUseCase(slotRepo, dismissalRepo, staff, fakeTxManager{}, noopLogger{})

	day := date(2026, time.March, 2)

	// Конфликтный интервал 10:00-10:30 на личной сетке
	for _, minute := range []int{0, 10, 20} {
		slot := domain.ScheduleSlot{
			OwnerID:      1,
			Date:         day,
			Hour:         10,
			Minute:       minute,
			IsWorking:    true,
			WorkType:     domain.WorkTypePersonal,
			HasConflict:  true,
			ConflictType: domain.ConflictBooking,
		}
		slotRepo.slots[slot.Key().String()] = slot
	}
	// Соседний рабочий слот без конфликта
	clean := domain.ScheduleSlot{OwnerID: 1, Date: day, Hour: 11, Minute: 0, IsWorking: true, WorkType: domain.WorkTypePersonal}
	slotRepo.slots[clean.Key().String()] = clean

	return &fixture{uc: uc, slotRepo: slotRepo, dismissalRepo: dismissalRepo, staff: staff, day: day}
}

func resolveRequest(day time.Time, action domain.ResolutionAction) *Request {
	return &Request{
		CallerID:  1,
		OwnerID:   1,
		Date:      day,
		StartTime: "10:00",
		EndTime:   "10:30",
		Action:    action,
	}
}

// --- tests ---

func TestExecute_Remove(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), resolveRequest(f.day, domain.ResolutionRemove))
	require.NoError(t, err)

	assert.Equal(t, 3, resp.SlotsAffected)
	assert.Empty(t, resp.Conflicts)

	// Накрытые слоты нерабочие, флаг снят
	for _, minute := range []int{0, 10, 20} {
		slot := f.slotRepo.slots[domain.SlotKey{Date: f.day, Hour: 10, Minute: minute}.String()]
		assert.False(t, slot.IsWorking, "minute %d", minute)
		assert.False(t, slot.HasConflict, "minute %d", minute)
		assert.Equal(t, domain.ConflictNone, slot.ConflictType, "minute %d", minute)
	}

	// Слот вне интервала не тронут
	clean := f.slotRepo.slots[domain.SlotKey{Date: f.day, Hour: 11, Minute: 0}.String()]
	assert.True(t, clean.IsWorking)
}

func TestExecute_RemoveIdempotent(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.Execute(context.Background(), resolveRequest(f.day, domain.ResolutionRemove))
	require.NoError(t, err)
	assert.Equal(t, 3, first.SlotsAffected)

	// Повторное разрешение того же конфликта — no-op
	second, err := f.uc.Execute(context.Background(), resolveRequest(f.day, domain.ResolutionRemove))
	require.NoError(t, err)
	assert.Equal(t, 0, second.SlotsAffected)
	assert.Empty(t, second.Conflicts)
}

func TestExecute_Keep(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), resolveRequest(f.day, domain.ResolutionKeep))
	require.NoError(t, err)

	assert.Equal(t, 0, resp.SlotsAffected)

	// Слоты не изменились: рабочие, флаг на месте
	for _, minute := range []int{0, 10, 20} {
		slot := f.slotRepo.slots[domain.SlotKey{Date: f.day, Hour: 10, Minute: minute}.String()]
		assert.True(t, slot.IsWorking)
		assert.True(t, slot.HasConflict)
	}

	// Конфликт остается в выдаче
	require.Len(t, resp.Conflicts, 1)
}

func TestExecute_Ignore(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), resolveRequest(f.day, domain.ResolutionIgnore))
	require.NoError(t, err)

	assert.Equal(t, 3, resp.SlotsAffected)

	// Данные расписания не изменились
	for _, minute := range []int{0, 10, 20} {
		slot := f.slotRepo.slots[domain.SlotKey{Date: f.day, Hour: 10, Minute: minute}.String()]
		assert.True(t, slot.IsWorking)
		assert.True(t, slot.HasConflict)
		assert.Contains(t, f.dismissalRepo.dismissed, slot.Key().String())
	}

	// Но конфликт скрыт из выдачи
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_IgnoreIdempotent(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), resolveRequest(f.day, domain.ResolutionIgnore))
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), resolveRequest(f.day, domain.ResolutionIgnore))
	require.NoError(t, err)
	assert.Len(t, f.dismissalRepo.dismissed, 3)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_AccessDenied(t *testing.T) {
	f := newFixture(t)
	f.staff.allowed = false

	_, err := f.uc.Execute(context.Background(), resolveRequest(f.day, domain.ResolutionRemove))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_InvalidAction(t *testing.T) {
	f := newFixture(t)

	req := resolveRequest(f.day, "postpone")
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvertedRange(t *testing.T) {
	f := newFixture(t)

	req := resolveRequest(f.day, domain.ResolutionRemove)
	req.StartTime, req.EndTime = req.EndTime, req.StartTime

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
