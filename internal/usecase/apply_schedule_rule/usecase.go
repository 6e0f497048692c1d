package apply_schedule_rule

import (
	"context"
	"fmt"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// UseCase use case материализации правила повторяемости.
// Разворачивает декларативное правило в конкретные слоты окна
// [сегодня, validUntil], атомарно замещая прежнее окно.
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	ruleRepo     RuleRepository
	staffClient  StaffClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	ruleRepo RuleRepository,
	staffClient StaffClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		ruleRepo:     ruleRepo,
		staffClient:  staffClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет материализацию правила.
//
// Все операции с БД идут в одной сериализуемой транзакции: запись применяется
// к окну целиком или не применяется вовсе. Существующие записи клиентов
// выигрывают у нового правила — их слоты не затираются, а помечаются
// конфликтом и возвращаются для разрешения. Повторная материализация того же
// правила без новых записей идемпотентна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApplyScheduleRule: caller=%d, owner=%d, type=%s, validUntil=%s",
		req.CallerID, req.OwnerID, req.Rule.Type, req.Rule.ValidUntil.Format(domain.DateFormat))

	// 1. Валидация входных данных и правила — до любой записи
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyScheduleRule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateRule(&req.Rule, now); err != nil {
		uc.logger.Warn("ApplyScheduleRule: rule validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа
	allowed, err := uc.staffClient.CanManage(ctx, req.CallerID, req.OwnerID)
	if err != nil || !allowed {
		uc.logger.Warn("ApplyScheduleRule: access denied for caller=%d to owner=%d: %v",
			req.CallerID, req.OwnerID, err)
		return nil, ErrAccessDenied
	}

	// 3. Окно материализации: от сегодня до validUntil, с жестким потолком
	from, to := materializationWindow(now, req.Rule.ValidUntil)

	var response *Response

	// 4. Читаем окно, строим кандидатов, прогоняем через детектор конфликтов
	// и пишем — всё в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existingSlots, err := uc.slotRepo.GetByOwnerAndDateRange(txCtx, req.OwnerID, from, to)
		if err != nil {
			uc.logger.Error("ApplyScheduleRule: failed to get existing slots: %v", err)
			return fmt.Errorf("%w: failed to get existing slots: %v", ErrInternal, err)
		}

		existing := make(map[string]domain.ScheduleSlot, len(existingSlots))
		for _, slot := range existingSlots {
			existing[slot.Key().String()] = slot
		}

		bookings, err := uc.bookingRepo.GetActiveByOwnerAndDateRange(txCtx, req.OwnerID, from, to)
		if err != nil {
			uc.logger.Error("ApplyScheduleRule: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		candidates := buildCandidates(req.OwnerID, &req.Rule, from, to, existing, bookings)
		revised, conflicts := domain.ApplyConflictPolicy(candidates, existing, bookings)

		written := 0
		if len(revised) > 0 {
			written, err = uc.slotRepo.UpsertBatch(txCtx, revised)
			if err != nil {
				uc.logger.Error("ApplyScheduleRule: failed to write slots: %v", err)
				return fmt.Errorf("%w: failed to write slots: %v", ErrInternal, err)
			}
		}

		rule := req.Rule
		rule.OwnerID = req.OwnerID
		rule.ValidUntil = domain.DateOnly(rule.ValidUntil)
		if err := uc.ruleRepo.Upsert(txCtx, &rule); err != nil {
			uc.logger.Error("ApplyScheduleRule: failed to save rule: %v", err)
			return fmt.Errorf("%w: failed to save rule: %v", ErrInternal, err)
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

	uc.logger.Info("ApplyScheduleRule: owner=%d, window=%s..%s, slotsWritten=%d, conflictDays=%d",
		req.OwnerID, from.Format(domain.DateFormat), to.Format(domain.DateFormat),
		response.SlotsWritten, len(response.Conflicts))

	return response, nil
}
