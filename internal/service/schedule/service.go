package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Cappie92/bookme-sub002/internal/domain"
	ruleRepo "github.com/Cappie92/bookme-sub002/internal/infra/storage/rule"
	"github.com/Cappie92/bookme-sub002/internal/service/schedule/models"
	"github.com/Cappie92/bookme-sub002/pkg/ptr"
)

// Service сервис чтения расписания и операций без сложной оркестрации:
// недельный и месячный виды, очистка будущего расписания, просмотр правила
// и открытых конфликтов
type Service struct {
	slotRepo      SlotRepository
	bookingRepo   BookingRepository
	ruleRepo      RuleRepository
	dismissalRepo DismissalRepository
	staffClient   StaffClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	ruleRepo RuleRepository,
	dismissalRepo DismissalRepository,
	staffClient StaffClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:      slotRepo,
		bookingRepo:   bookingRepo,
		ruleRepo:      ruleRepo,
		dismissalRepo: dismissalRepo,
		staffClient:   staffClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetWeekly получает недельное расписание работника.
// weekOffset — знаковое смещение в неделях от текущей недели.
func (s *Service) GetWeekly(ctx context.Context, callerID, ownerID int64, weekOffset int) (*models.WeeklySchedule, error) {
	s.logger.Info("GetWeekly: caller=%d, owner=%d, weekOffset=%d", callerID, ownerID, weekOffset)

	if err := s.checkAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}

	weekStart := domain.WeekStart(s.timeProvider.Now()).AddDate(0, 0, weekOffset*7)
	weekEnd := weekStart.AddDate(0, 0, 6)

	slots, err := s.slotRepo.GetByOwnerAndDateRange(ctx, ownerID, weekStart, weekEnd)
	if err != nil {
		s.logger.Error("GetWeekly: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetWeekly - repository error: %v", ErrInternal, err)
	}

	byDate := make(map[string][]models.Slot)
	for _, slot := range slots {
		key := slot.Date.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], models.FromDomainSlot(slot))
	}

	days := make([]models.DaySlots, 0, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		daySlots := byDate[date.Format(domain.DateFormat)]
		if daySlots == nil {
			daySlots = []models.Slot{}
		}
		days = append(days, models.DaySlots{Date: date, Slots: daySlots})
	}

	s.logger.Info("GetWeekly: fetched %d slots for owner=%d, week of %s",
		len(slots), ownerID, weekStart.Format(domain.DateFormat))

	return &models.WeeklySchedule{
		OwnerID:   ownerID,
		WeekStart: weekStart,
		Days:      days,
	}, nil
}

// GetMonthly получает месячную сводку расписания вместе с сырым списком
// слотов месяца для рендера календаря. Только чтение, никаких мутаций.
func (s *Service) GetMonthly(ctx context.Context, callerID, ownerID int64, year int, month time.Month) (*models.MonthlySchedule, error) {
	s.logger.Info("GetMonthly: caller=%d, owner=%d, year=%d, month=%d", callerID, ownerID, year, month)

	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be 1-12", ErrInvalidInput)
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}

	if err := s.checkAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	slots, err := s.slotRepo.GetByOwnerAndDateRange(ctx, ownerID, monthStart, monthEnd)
	if err != nil {
		s.logger.Error("GetMonthly: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetMonthly - repository error: %v", ErrInternal, err)
	}

	summary := domain.SummarizeMonth(slots)

	days := make([]models.DaySummary, 0, len(summary))
	for date := monthStart; !date.After(monthEnd); date = date.AddDate(0, 0, 1) {
		day, ok := summary[date.Format(domain.DateFormat)]
		if !ok {
			continue
		}
		days = append(days, models.DaySummary{
			Date:             date,
			HasWorking:       day.HasWorking,
			HasConflict:      day.HasConflict,
			DominantWorkType: day.DominantWorkType,
		})
	}

	s.logger.Info("GetMonthly: summarized %d days from %d slots for owner=%d", len(days), len(slots), ownerID)

	return &models.MonthlySchedule{
		OwnerID: ownerID,
		Year:    year,
		Month:   month,
		Days:    days,
		Slots:   models.FromDomainSlots(slots),
	}, nil
}

// ClearFuture переводит все будущие слоты работника в нерабочее состояние.
// Слоты, накрытые активными записями клиентов, не освобождаются молча:
// они остаются рабочими с флагом конфликта booking — та же политика
// tie-break, что и при материализации правила.
func (s *Service) ClearFuture(ctx context.Context, callerID, ownerID int64) (*models.ClearFutureResult, error) {
	s.logger.Info("ClearFuture: caller=%d, owner=%d", callerID, ownerID)

	if err := s.checkAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}

	today := domain.DateOnly(s.timeProvider.Now())
	horizon := today.AddDate(0, 0, domain.MaxRuleWindowDays)

	var result models.ClearFutureResult

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bookings, err := s.bookingRepo.GetActiveByOwnerAndDateRange(txCtx, ownerID, today, horizon)
		if err != nil {
			return fmt.Errorf("%w: ClearFuture - get bookings: %v", ErrInternal, err)
		}

		cleared, err := s.slotRepo.ClearFrom(txCtx, ownerID, today)
		if err != nil {
			return fmt.Errorf("%w: ClearFuture - clear slots: %v", ErrInternal, err)
		}

		// Возвращаем слоты под активными записями в рабочее состояние с флагом конфликта
		preserved := bookingClaimSlots(ownerID, bookings)
		if len(preserved) > 0 {
			if _, err := s.slotRepo.UpsertBatch(txCtx, preserved); err != nil {
				return fmt.Errorf("%w: ClearFuture - preserve booked slots: %v", ErrInternal, err)
			}
		}

		result = models.ClearFutureResult{
			SlotsCleared:       cleared,
			PreservedConflicts: len(preserved),
		}
		return nil
	})

	if err != nil {
		s.logger.Error("ClearFuture: failed for owner=%d: %v", ownerID, err)
		return nil, err
	}

	s.logger.Info("ClearFuture: cleared %d slots, preserved %d booked slots for owner=%d",
		result.SlotsCleared, result.PreservedConflicts, ownerID)

	return &result, nil
}

// GetRule получает последнее примененное правило работника
func (s *Service) GetRule(ctx context.Context, callerID, ownerID int64) (*domain.RecurrenceRule, error) {
	s.logger.Info("GetRule: caller=%d, owner=%d", callerID, ownerID)

	if err := s.checkAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}

	rule, err := s.ruleRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		s.logger.Error("GetRule: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetRule - repository error: %v", ErrInternal, err)
	}

	return rule, nil
}

// GetConflicts получает открытые конфликты работника, сгруппированные по датам.
// Скрытые (ignored) конфликты фильтруются, если includeDismissed == false.
func (s *Service) GetConflicts(ctx context.Context, callerID, ownerID int64, includeDismissed bool) ([]domain.DayConflicts, error) {
	s.logger.Info("GetConflicts: caller=%d, owner=%d, includeDismissed=%t", callerID, ownerID, includeDismissed)

	if err := s.checkAccess(ctx, callerID, ownerID); err != nil {
		return nil, err
	}

	today := domain.DateOnly(s.timeProvider.Now())

	flagged, err := s.slotRepo.GetConflicted(ctx, ptr.Ptr(ownerID), nil, today)
	if err != nil {
		s.logger.Error("GetConflicts: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetConflicts - repository error: %v", ErrInternal, err)
	}

	if !includeDismissed {
		dismissed, err := s.dismissalRepo.GetByOwner(ctx, ownerID, today)
		if err != nil {
			s.logger.Error("GetConflicts: dismissal repository error for owner=%d: %v", ownerID, err)
			return nil, fmt.Errorf("%w: GetConflicts - dismissal repository error: %v", ErrInternal, err)
		}

		visible := make([]domain.ScheduleSlot, 0, len(flagged))
		for _, slot := range flagged {
			if _, ok := dismissed[slot.Key().String()]; !ok {
				visible = append(visible, slot)
			}
		}
		flagged = visible
	}

	conflicts := domain.CoalesceConflicts(flagged)
	grouped := domain.GroupConflictsByDate(conflicts)

	s.logger.Info("GetConflicts: %d conflicts in %d days for owner=%d", len(conflicts), len(grouped), ownerID)

	return grouped, nil
}

// checkAccess проверяет, что вызывающий управляет расписанием работника
func (s *Service) checkAccess(ctx context.Context, callerID, ownerID int64) error {
	allowed, err := s.staffClient.CanManage(ctx, callerID, ownerID)
	if err != nil {
		s.logger.Warn("checkAccess: cannot verify access for caller=%d owner=%d: %v", callerID, ownerID, err)
		return ErrAccessDenied
	}
	if !allowed {
		s.logger.Warn("checkAccess: access denied for caller=%d to owner=%d schedule", callerID, ownerID)
		return ErrAccessDenied
	}
	return nil
}

// bookingClaimSlots строит рабочие слоты с флагом конфликта booking
// по всем слотам, накрытым активными записями
func bookingClaimSlots(ownerID int64, bookings []*domain.Booking) []domain.ScheduleSlot {
	slots := make([]domain.ScheduleSlot, 0)

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		step := b.WorkType.SlotStepMinutes()
		keys := domain.RangeSlotKeys(b.Date, domain.TimeRange{Start: b.StartTime, End: b.EndTime}, step)
		for _, key := range keys {
			slots = append(slots, domain.ScheduleSlot{
				OwnerID:      ownerID,
				Date:         key.Date,
				Hour:         key.Hour,
				Minute:       key.Minute,
				IsWorking:    true,
				WorkType:     b.WorkType,
				HasConflict:  true,
				ConflictType: domain.ConflictBooking,
			})
		}
	}

	return slots
}
