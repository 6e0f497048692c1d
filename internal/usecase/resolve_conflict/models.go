package resolve_conflict

import (
	"time"

	"github.com/Cappie92/bookme-sub002/internal/domain"
	"github.com/Cappie92/bookme-sub002/pkg/types"
)

// Request модель запроса на разрешение конфликта.
// Интервал [StartTime, EndTime) указывает конфликт из выдачи GetConflicts.
type Request struct {
	CallerID  int64
	OwnerID   int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Action    domain.ResolutionAction
}

// Response модель ответа: сколько слотов затронуто действием и
// открытые конфликты, оставшиеся на этой дате после разрешения
type Response struct {
	Action        domain.ResolutionAction
	SlotsAffected int
	Conflicts     []domain.DayConflicts
}
