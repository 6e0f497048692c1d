package update_weekly_schedule

import (
	"context"

	updateWeekly "github.com/Cappie92/bookme-sub002/internal/usecase/update_weekly_schedule"
)

type UpdateWeeklyScheduleUseCase interface {
	Execute(ctx context.Context, req *updateWeekly.Request) (*updateWeekly.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
