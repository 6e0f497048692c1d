package resolve_conflict

import (
	"context"

	resolveConflict "github.com/Cappie92/bookme-sub002/internal/usecase/resolve_conflict"
)

type ResolveConflictUseCase interface {
	Execute(ctx context.Context, req *resolveConflict.Request) (*resolveConflict.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
