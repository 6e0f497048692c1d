package resolve_conflict

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

// DismissalRepository интерфейс репозитория скрытых конфликтов
type DismissalRepository interface {
	Add(ctx context.Context, ownerID int64, keys []domain.SlotKey) error
	GetByOwner(ctx context.Context, ownerID int64, from time.Time) (map[string]struct{}, error)
}

// StaffClient интерфейс клиента StaffService для проверки прав доступа
type StaffClient interface {
	CanManage(ctx context.Context, callerID, workerID int64) (bool, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
