package apply_schedule_rule

import (
	"context"

	applyRule "github.com/Cappie92/bookme-sub002/internal/usecase/apply_schedule_rule"
)

type ApplyScheduleRuleUseCase interface {
	Execute(ctx context.Context, req *applyRule.Request) (*applyRule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
