package get_monthly_schedule

import (
	"context"
	"time"

	"github.com/Cappie92/bookme-sub002/internal/service/schedule/models"
)

type ScheduleService interface {
	GetMonthly(ctx context.Context, callerID, ownerID int64, year int, month time.Month) (*models.MonthlySchedule, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
