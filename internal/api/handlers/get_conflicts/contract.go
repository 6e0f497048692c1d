package get_conflicts

import (
	"context"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

type ScheduleService interface {
	GetConflicts(ctx context.Context, callerID, ownerID int64, includeDismissed bool) ([]domain.DayConflicts, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
