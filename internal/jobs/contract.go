package jobs

import (
	"context"
	"time"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// SlotRepository интерфейс репозитория слотов для фоновых задач
type SlotRepository interface {
	GetConflicted(ctx context.Context, ownerID *int64, conflictType *domain.ConflictType, from time.Time) ([]domain.ScheduleSlot, error)
	ClearConflictFlags(ctx context.Context, ownerID int64, keys []domain.SlotKey) (int, error)
}

// BookingRepository интерфейс read-only репозитория записей клиентов
type BookingRepository interface {
	GetActiveByOwnerAndDateRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.Booking, error)
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
