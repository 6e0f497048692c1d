package resolve_conflict

import (
	"time"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/domain"
	resolveConflict "github.com/Cappie92/bookme-sub002/internal/usecase/resolve_conflict"
	"github.com/Cappie92/bookme-sub002/pkg/types"
)

// ResolveConflictRequest HTTP request model
type ResolveConflictRequest struct {
	Date      string `json:"date"`      // "2026-03-02"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:30"
	Action    string `json:"action"`    // "keep" | "remove" | "ignore"
}

// ResolveConflictResponse HTTP response model
type ResolveConflictResponse struct {
	Action        string                          `json:"action"`
	SlotsAffected int                             `json:"slotsAffected"`
	Conflicts     []handlers.DayConflictsResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ResolveConflictRequest) ToUseCaseRequest(callerID, ownerID int64) (*resolveConflict.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &resolveConflict.Request{
		CallerID:  callerID,
		OwnerID:   ownerID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Action:    domain.ResolutionAction(r.Action),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveConflict.Response) *ResolveConflictResponse {
	return &ResolveConflictResponse{
		Action:        string(resp.Action),
		SlotsAffected: resp.SlotsAffected,
		Conflicts:     handlers.FromDayConflicts(resp.Conflicts),
	}
}
