package resolve_conflict

import (
	"context"
	"fmt"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// UseCase use case разрешения конфликта расписания.
// Конфликт переходит в терминальное состояние: keep оставляет слот
// рабочим (флаг снимет janitor, когда запись клиента завершится),
// remove снимает claim работника с накрытых слотов, ignore скрывает
// конфликт из выдачи по умолчанию без изменения данных расписания.
// Повторное разрешение уже разрешенного конфликта — no-op.
type UseCase struct {
	slotRepo      SlotRepository
	dismissalRepo DismissalRepository
	staffClient   StaffClient
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	dismissalRepo DismissalRepository,
	staffClient StaffClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		dismissalRepo: dismissalRepo,
		staffClient:   staffClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute применяет действие к конфликту и возвращает итоговое состояние даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveConflict: caller=%d, owner=%d, date=%s, range=%s-%s, action=%s",
		req.CallerID, req.OwnerID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Action)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveConflict: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	allowed, err := uc.staffClient.CanManage(ctx, req.CallerID, req.OwnerID)
	if err != nil || !allowed {
		uc.logger.Warn("ResolveConflict: access denied for caller=%d to owner=%d: %v",
			req.CallerID, req.OwnerID, err)
		return nil, ErrAccessDenied
	}

	date := domain.DateOnly(req.Date)
	startMin := req.StartTime.Minutes()
	endMin := req.EndTime.Minutes()

	var response *Response

	// 3. Применяем действие и собираем итоговое состояние в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slots, err := uc.slotRepo.GetByOwnerAndDateRange(txCtx, req.OwnerID, date, date)
		if err != nil {
			uc.logger.Error("ResolveConflict: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		covered := make([]domain.ScheduleSlot, 0, len(slots))
		for _, slot := range slots {
			if slot.StartMinutes() >= startMin && slot.StartMinutes() < endMin {
				covered = append(covered, slot)
			}
		}

		affected := 0
		removed := make(map[string]struct{})

		switch req.Action {
		case domain.ResolutionKeep:
			// Слоты остаются рабочими, флаги не трогаем.

		case domain.ResolutionRemove:
			revised := make([]domain.ScheduleSlot, 0, len(covered))
			for _, slot := range covered {
				if !slot.IsWorking && !slot.HasConflict {
					continue
				}
				slot.IsWorking = false
				slot.HasConflict = false
				slot.ConflictType = domain.ConflictNone
				revised = append(revised, slot)
				removed[slot.Key().String()] = struct{}{}
			}
			if len(revised) > 0 {
				affected, err = uc.slotRepo.UpsertBatch(txCtx, revised)
				if err != nil {
					uc.logger.Error("ResolveConflict: failed to write slots: %v", err)
					return fmt.Errorf("%w: failed to write slots: %v", ErrInternal, err)
				}
			}

		case domain.ResolutionIgnore:
			keys := make([]domain.SlotKey, 0, len(covered))
			for _, slot := range covered {
				if slot.HasConflict {
					keys = append(keys, slot.Key())
				}
			}
			if len(keys) > 0 {
				if err := uc.dismissalRepo.Add(txCtx, req.OwnerID, keys); err != nil {
					uc.logger.Error("ResolveConflict: failed to dismiss conflicts: %v", err)
					return fmt.Errorf("%w: failed to dismiss conflicts: %v", ErrInternal, err)
				}
				affected = len(keys)
			}
		}

		dismissed, err := uc.dismissalRepo.GetByOwner(txCtx, req.OwnerID, date)
		if err != nil {
			uc.logger.Error("ResolveConflict: failed to get dismissed set: %v", err)
			return fmt.Errorf("%w: failed to get dismissed set: %v", ErrInternal, err)
		}

		// Открытые конфликты даты после применения действия
		remaining := make([]domain.ScheduleSlot, 0, len(slots))
		for _, slot := range slots {
			if !slot.HasConflict {
				continue
			}
			key := slot.Key().String()
			if _, ok := removed[key]; ok {
				continue
			}
			if _, ok := dismissed[key]; ok {
				continue
			}
			remaining = append(remaining, slot)
		}

		response = &Response{
			Action:        req.Action,
			SlotsAffected: affected,
			Conflicts:     domain.GroupConflictsByDate(domain.CoalesceConflicts(remaining)),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ResolveConflict: owner=%d, action=%s, slotsAffected=%d",
		req.OwnerID, req.Action, response.SlotsAffected)

	return response, nil
}
