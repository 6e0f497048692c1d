package clear_future_schedule

import (
	"context"

	"github.com/Cappie92/bookme-sub002/internal/service/schedule/models"
)

type ScheduleService interface {
	ClearFuture(ctx context.Context, callerID, ownerID int64) (*models.ClearFutureResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
