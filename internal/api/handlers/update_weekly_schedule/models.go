package update_weekly_schedule

import (
	"time"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/domain"
	updateWeekly "github.com/Cappie92/bookme-sub002/internal/usecase/update_weekly_schedule"
)

// SlotPatchRequest явное значение одного слота
type SlotPatchRequest struct {
	Date      string `json:"date"` // "2026-03-02"
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	IsWorking bool   `json:"isWorking"`
}

// CoordinateRequest координата сетки недельного календаря
type CoordinateRequest struct {
	Day  int `json:"day"`  // 0 = понедельник
	Time int `json:"time"` // индекс строки времени
}

// SelectionRequest прямоугольное выделение
type SelectionRequest struct {
	Anchor     CoordinateRequest `json:"anchor"`
	Cursor     CoordinateRequest `json:"cursor"`
	WeekOffset int               `json:"weekOffset"`
	Mode       string            `json:"mode"` // "select" | "deselect"
}

// UpdateWeeklyScheduleRequest HTTP request model
type UpdateWeeklyScheduleRequest struct {
	WorkType  string             `json:"workType"`
	Slots     []SlotPatchRequest `json:"slots,omitempty"`
	Selection *SelectionRequest  `json:"selection,omitempty"`
}

// UpdateWeeklyScheduleResponse HTTP response model
type UpdateWeeklyScheduleResponse struct {
	SlotsWritten int                             `json:"slotsWritten"`
	Conflicts    []handlers.DayConflictsResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateWeeklyScheduleRequest) ToUseCaseRequest(callerID, ownerID int64) (*updateWeekly.Request, error) {
	req := &updateWeekly.Request{
		CallerID: callerID,
		OwnerID:  ownerID,
		WorkType: domain.WorkType(r.WorkType),
	}

	for _, patch := range r.Slots {
		date, err := time.Parse(domain.DateFormat, patch.Date)
		if err != nil {
			return nil, err
		}
		req.Slots = append(req.Slots, updateWeekly.SlotPatch{
			Date:      date,
			Hour:      patch.Hour,
			Minute:    patch.Minute,
			IsWorking: patch.IsWorking,
		})
	}

	if r.Selection != nil {
		req.Selection = &updateWeekly.RectSelection{
			Anchor:     domain.Coordinate{Day: r.Selection.Anchor.Day, Time: r.Selection.Anchor.Time},
			Cursor:     domain.Coordinate{Day: r.Selection.Cursor.Day, Time: r.Selection.Cursor.Time},
			WeekOffset: r.Selection.WeekOffset,
			Mode:       domain.SelectionMode(r.Selection.Mode),
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateWeekly.Response) *UpdateWeeklyScheduleResponse {
	return &UpdateWeeklyScheduleResponse{
		SlotsWritten: resp.SlotsWritten,
		Conflicts:    handlers.FromDayConflicts(resp.Conflicts),
	}
}
