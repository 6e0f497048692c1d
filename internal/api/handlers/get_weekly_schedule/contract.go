package get_weekly_schedule

import (
	"context"

	"github.com/Cappie92/bookme-sub002/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeekly(ctx context.Context, callerID, ownerID int64, weekOffset int) (*models.WeeklySchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
