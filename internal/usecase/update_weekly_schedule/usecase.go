package update_weekly_schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// UseCase use case bulk-редактирования недельного расписания.
// Принимает либо явный список слотов, либо прямоугольное выделение
// (перетаскивание по сетке в календаре) и атомарно применяет изменение.
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	staffClient  StaffClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	staffClient StaffClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		staffClient:  staffClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет bulk-редактирование.
// Запись batch-or-nothing: при любой ошибке хранилища транзакция
// откатывается целиком и расписание остается в прежнем состоянии.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateWeeklySchedule: caller=%d, owner=%d, workType=%s, slots=%d, selection=%t",
		req.CallerID, req.OwnerID, req.WorkType, len(req.Slots), req.Selection != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateWeeklySchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	allowed, err := uc.staffClient.CanManage(ctx, req.CallerID, req.OwnerID)
	if err != nil || !allowed {
		uc.logger.Warn("UpdateWeeklySchedule: access denied for caller=%d to owner=%d: %v",
			req.CallerID, req.OwnerID, err)
		return nil, ErrAccessDenied
	}

	// 3. Разворачиваем запрос в кандидатов на запись
	candidates := uc.buildCandidates(req)
	if len(candidates) == 0 {
		return nil, ErrEmptyUpdate
	}

	from, to := dateSpan(candidates)

	var response *Response

	// 4. Детекция конфликтов и запись в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		keys := make([]domain.SlotKey, 0, len(candidates))
		for _, candidate := range candidates {
			keys = append(keys, candidate.Key())
		}

		existing, err := uc.slotRepo.GetByKeys(txCtx, req.OwnerID, keys)
		if err != nil {
			uc.logger.Error("UpdateWeeklySchedule: failed to get existing slots: %v", err)
			return fmt.Errorf("%w: failed to get existing slots: %v", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.GetActiveByOwnerAndDateRange(txCtx, req.OwnerID, from, to)
		if err != nil {
			uc.logger.Error("UpdateWeeklySchedule: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		revised, conflicts := domain.ApplyConflictPolicy(candidates, existing, bookings)

		written, err := uc.slotRepo.UpsertBatch(txCtx, revised)
		if err != nil {
			uc.logger.Error("UpdateWeeklySchedule: failed to write slots: %v", err)
			return fmt.Errorf("%w: failed to write slots: %v", ErrInternal, err)
		}

		response = &Response{
			SlotsWritten: written,
			Conflicts:    domain.GroupConflictsByDate(conflicts),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateWeeklySchedule: owner=%d, slotsWritten=%d, conflictDays=%d",
		req.OwnerID, response.SlotsWritten, len(response.Conflicts))

	return response, nil
}

// buildCandidates разворачивает запрос в слоты для записи
func (uc *UseCase) buildCandidates(req *Request) []domain.ScheduleSlot {
	if len(req.Slots) > 0 {
		candidates := make([]domain.ScheduleSlot, 0, len(req.Slots))
		for _, patch := range req.Slots {
			candidates = append(candidates, domain.ScheduleSlot{
				OwnerID:      req.OwnerID,
				Date:         domain.DateOnly(patch.Date),
				Hour:         patch.Hour,
				Minute:       patch.Minute,
				IsWorking:    patch.IsWorking,
				WorkType:     req.WorkType,
				ConflictType: domain.ConflictNone,
			})
		}
		return candidates
	}

	sel := req.Selection
	weekStart := domain.WeekStart(uc.timeProvider.Now()).AddDate(0, 0, sel.WeekOffset*7)
	keys := domain.SelectRange(sel.Anchor, sel.Cursor, weekStart, req.WorkType.SlotStepMinutes())

	candidates := make([]domain.ScheduleSlot, 0, len(keys))
	for _, key := range keys {
		candidates = append(candidates, domain.ScheduleSlot{
			OwnerID:      req.OwnerID,
			Date:         key.Date,
			Hour:         key.Hour,
			Minute:       key.Minute,
			IsWorking:    sel.Mode == domain.SelectionModeSelect,
			WorkType:     req.WorkType,
			ConflictType: domain.ConflictNone,
		})
	}
	return candidates
}

// dateSpan возвращает минимальную и максимальную даты кандидатов
func dateSpan(candidates []domain.ScheduleSlot) (time.Time, time.Time) {
	dates := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		dates = append(dates, c.Date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates[0], dates[len(dates)-1]
}
