package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cappie92/bookme-sub002/internal/domain"
	"github.com/Cappie92/bookme-sub002/pkg/types"
)

type fakeSlotRepo struct {
	flagged []domain.ScheduleSlot
	cleared map[int64][]domain.SlotKey
}

func (r *fakeSlotRepo) GetConflicted(_ context.Context, _ *int64, conflictType *domain.ConflictType, _ time.Time) ([]domain.ScheduleSlot, error) {
	result := make([]domain.ScheduleSlot, 0, len(r.flagged))
	for _, slot := range r.flagged {
		if conflictType == nil || slot.ConflictType == *conflictType {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (r *fakeSlotRepo) ClearConflictFlags(_ context.Context, ownerID int64, keys []domain.SlotKey) (int, error) {
	if r.cleared == nil {
		r.cleared = make(map[int64][]domain.SlotKey)
	}
	r.cleared[ownerID] = append(r.cleared[ownerID], keys...)
	return len(keys), nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) GetActiveByOwnerAndDateRange(_ context.Context, ownerID int64, _, _ time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if b.OwnerID == ownerID && b.IsActive() {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func flaggedSlot(ownerID int64, date time.Time, hour, minute int) domain.ScheduleSlot {
	return domain.ScheduleSlot{
		OwnerID:      ownerID,
		Date:         date,
		Hour:         hour,
		Minute:       minute,
		IsWorking:    true,
		WorkType:     domain.WorkTypePersonal,
		HasConflict:  true,
		ConflictType: domain.ConflictBooking,
	}
}

func TestSweep_ClearsStaleFlags(t *testing.T) {
	day := domain.DateOnly(time.Now().AddDate(0, 0, 1))

	slotRepo := &fakeSlotRepo{flagged: []domain.ScheduleSlot{
		flaggedSlot(1, day, 10, 0),
		flaggedSlot(1, day, 10, 10),
		flaggedSlot(1, day, 14, 0),
	}}
	// Запись 10:00-10:30 еще активна, запись на 14:00 отменена
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, OwnerID: 1, Date: day, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("10:30"), Status: domain.BookingStatusConfirmed},
		{ID: 2, OwnerID: 1, Date: day, StartTime: types.TimeString("14:00"), EndTime: types.TimeString("14:30"), Status: domain.BookingStatusCancelled},
	}}

	janitor := NewConflictJanitor(slotRepo, bookingRepo, fakeTxManager{}, noopLogger{}, "@hourly")
	require.NoError(t, janitor.Sweep(context.Background()))

	// Снят только флаг слота без живой записи
	require.Len(t, slotRepo.cleared[1], 1)
	assert.Equal(t, domain.SlotKey{Date: day, Hour: 14, Minute: 0}, slotRepo.cleared[1][0])
}

func TestSweep_AllBookingsAlive(t *testing.T) {
	day := domain.DateOnly(time.Now().AddDate(0, 0, 1))

	slotRepo := &fakeSlotRepo{flagged: []domain.ScheduleSlot{
		flaggedSlot(1, day, 10, 0),
	}}
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{
		{ID: 1, OwnerID: 1, Date: day, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("10:30"), Status: domain.BookingStatusPending},
	}}

	janitor := NewConflictJanitor(slotRepo, bookingRepo, fakeTxManager{}, noopLogger{}, "@hourly")
	require.NoError(t, janitor.Sweep(context.Background()))

	assert.Empty(t, slotRepo.cleared)
}

func TestSweep_MultipleOwners(t *testing.T) {
	day := domain.DateOnly(time.Now().AddDate(0, 0, 1))

	// У обоих работников флаги без живых записей
	slotRepo := &fakeSlotRepo{flagged: []domain.ScheduleSlot{
		flaggedSlot(1, day, 10, 0),
		flaggedSlot(2, day, 12, 0),
	}}
	bookingRepo := &fakeBookingRepo{}

	janitor := NewConflictJanitor(slotRepo, bookingRepo, fakeTxManager{}, noopLogger{}, "@hourly")
	require.NoError(t, janitor.Sweep(context.Background()))

	assert.Len(t, slotRepo.cleared[1], 1)
	assert.Len(t, slotRepo.cleared[2], 1)
}

func TestSweep_NothingFlagged(t *testing.T) {
	slotRepo := &fakeSlotRepo{}
	janitor := NewConflictJanitor(slotRepo, &fakeBookingRepo{}, fakeTxManager{}, noopLogger{}, "@hourly")

	require.NoError(t, janitor.Sweep(context.Background()))
	assert.Empty(t, slotRepo.cleared)
}
