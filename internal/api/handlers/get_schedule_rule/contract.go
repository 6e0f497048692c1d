package get_schedule_rule

import (
	"context"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

type ScheduleService interface {
	GetRule(ctx context.Context, callerID, ownerID int64) (*domain.RecurrenceRule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
