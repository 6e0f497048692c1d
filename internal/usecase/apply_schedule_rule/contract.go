package apply_schedule_rule

import (
	"context"
	"time"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) ([]domain.ScheduleSlot, error)
	UpsertBatch(ctx context.Context, slots []domain.ScheduleSlot) (int, error)
}

// BookingRepository интерфейс read-only репозитория записей клиентов
type BookingRepository interface {
	GetActiveByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Booking, error)
}

// RuleRepository интерфейс репозитория правил повторяемости
type RuleRepository interface {
	Upsert(ctx context.Context, rule *domain.RecurrenceRule) error
}

// StaffClient интерфейс клиента StaffService для проверки прав доступа
type StaffClient interface {
	CanManage(ctx context.Context, callerID, workerID int64) (bool, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
