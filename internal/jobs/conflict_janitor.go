package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Cappie92/bookme-sub002/internal/domain"
	"github.com/Cappie92/bookme-sub002/pkg/ptr"
)

// ConflictJanitor фоновая задача снятия устаревших booking-конфликтов.
// Флаг конфликта по записи клиента живет, пока запись активна; когда
// запись завершается или отменяется, флаг снимает этот janitor.
type ConflictJanitor struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger

	cron *cron.Cron
	spec string
}

// NewConflictJanitor создает janitor с cron-расписанием spec (например "@hourly")
func NewConflictJanitor(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
	spec string,
) *ConflictJanitor {
	return &ConflictJanitor{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
		cron:        cron.New(),
		spec:        spec,
	}
}

// Start регистрирует задачу и запускает планировщик
func (j *ConflictJanitor) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := j.Sweep(ctx); err != nil {
			j.logger.Error("ConflictJanitor: sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("ConflictJanitor: started with spec %q", j.spec)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прохода
func (j *ConflictJanitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.logger.Info("ConflictJanitor: stopped")
}

// Sweep один проход: находит слоты с booking-конфликтом, чьи записи
// клиентов больше не активны, и снимает с них флаг
func (j *ConflictJanitor) Sweep(ctx context.Context) error {
	today := domain.DateOnly(time.Now())

	flagged, err := j.slotRepo.GetConflicted(ctx, nil, ptr.Ptr(domain.ConflictBooking), today)
	if err != nil {
		return err
	}
	if len(flagged) == 0 {
		return nil
	}

	byOwner := make(map[int64][]domain.ScheduleSlot)
	for _, slot := range flagged {
		byOwner[slot.OwnerID] = append(byOwner[slot.OwnerID], slot)
	}

	cleared := 0
	for ownerID, slots := range byOwner {
		n, err := j.sweepOwner(ctx, ownerID, slots)
		if err != nil {
			j.logger.Warn("ConflictJanitor: owner=%d sweep failed: %v", ownerID, err)
			continue
		}
		cleared += n
	}

	if cleared > 0 {
		j.logger.Info("ConflictJanitor: cleared %d stale booking conflicts", cleared)
	}
	return nil
}

func (j *ConflictJanitor) sweepOwner(ctx context.Context, ownerID int64, slots []domain.ScheduleSlot) (int, error) {
	from, to := slots[0].Date, slots[0].Date
	for _, slot := range slots {
		if slot.Date.Before(from) {
			from = slot.Date
		}
		if slot.Date.After(to) {
			to = slot.Date
		}
	}

	cleared := 0
	err := j.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bookings, err := j.bookingRepo.GetActiveByOwnerAndDateRange(txCtx, ownerID, from, to)
		if err != nil {
			return err
		}

		stale := make([]domain.SlotKey, 0, len(slots))
		for _, slot := range slots {
			if !hasCoveringBooking(slot, bookings) {
				stale = append(stale, slot.Key())
			}
		}
		if len(stale) == 0 {
			return nil
		}

		cleared, err = j.slotRepo.ClearConflictFlags(txCtx, ownerID, stale)
		return err
	})
	return cleared, err
}

func hasCoveringBooking(slot domain.ScheduleSlot, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if booking.IsActive() && booking.CoversSlot(slot.Date, slot.Hour, slot.Minute) {
			return true
		}
	}
	return false
}
