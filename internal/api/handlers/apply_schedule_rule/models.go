package apply_schedule_rule

import (
	"strconv"
	"time"

	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/domain"
	applyRule "github.com/Cappie92/bookme-sub002/internal/usecase/apply_schedule_rule"
	"github.com/Cappie92/bookme-sub002/pkg/types"
)

// TimeRangeRequest рабочий интервал внутри дня
type TimeRangeRequest struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "18:00"
}

// ShiftRequest сменный график N через M
type ShiftRequest struct {
	WorkDays  int              `json:"workDays"`
	RestDays  int              `json:"restDays"`
	StartDate string           `json:"startDate"` // "2026-03-02"
	Time      TimeRangeRequest `json:"time"`
}

// ApplyScheduleRuleRequest HTTP request model
type ApplyScheduleRuleRequest struct {
	Type       string                      `json:"type"` // "weekdays" | "monthdays" | "shift"
	WorkType   string                      `json:"workType"`
	ValidUntil string                      `json:"validUntil"`
	Weekdays   map[string]TimeRangeRequest `json:"weekdays,omitempty"`
	Monthdays  map[string]TimeRangeRequest `json:"monthdays,omitempty"`
	Shift      *ShiftRequest               `json:"shift,omitempty"`
}

// ApplyScheduleRuleResponse HTTP response model
type ApplyScheduleRuleResponse struct {
	SlotsWritten int                             `json:"slotsWritten"`
	Conflicts    []handlers.DayConflictsResponse `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApplyScheduleRuleRequest) ToUseCaseRequest(callerID, ownerID int64) (*applyRule.Request, error) {
	rule := domain.RecurrenceRule{
		OwnerID:  ownerID,
		Type:     domain.RuleType(r.Type),
		WorkType: domain.WorkType(r.WorkType),
	}

	if r.ValidUntil != "" {
		validUntil, err := time.Parse(domain.DateFormat, r.ValidUntil)
		if err != nil {
			return nil, err
		}
		rule.ValidUntil = validUntil
	}

	if len(r.Weekdays) > 0 {
		weekdays, err := parseDayRanges(r.Weekdays)
		if err != nil {
			return nil, err
		}
		rule.Weekdays = weekdays
	}

	if len(r.Monthdays) > 0 {
		monthdays, err := parseDayRanges(r.Monthdays)
		if err != nil {
			return nil, err
		}
		rule.Monthdays = monthdays
	}

	if r.Shift != nil {
		startDate, err := time.Parse(domain.DateFormat, r.Shift.StartDate)
		if err != nil {
			return nil, err
		}
		shiftTime, err := parseTimeRange(r.Shift.Time)
		if err != nil {
			return nil, err
		}
		rule.Shift = &domain.ShiftPattern{
			WorkDays:  r.Shift.WorkDays,
			RestDays:  r.Shift.RestDays,
			StartDate: startDate,
			Time:      shiftTime,
		}
	}

	return &applyRule.Request{
		CallerID: callerID,
		OwnerID:  ownerID,
		Rule:     rule,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *applyRule.Response) *ApplyScheduleRuleResponse {
	return &ApplyScheduleRuleResponse{
		SlotsWritten: resp.SlotsWritten,
		Conflicts:    handlers.FromDayConflicts(resp.Conflicts),
	}
}

func parseDayRanges(src map[string]TimeRangeRequest) (map[int]domain.TimeRange, error) {
	result := make(map[int]domain.TimeRange, len(src))
	for key, tr := range src {
		day, err := strconv.Atoi(key)
		if err != nil {
			return nil, err
		}
		parsed, err := parseTimeRange(tr)
		if err != nil {
			return nil, err
		}
		result[day] = parsed
	}
	return result, nil
}

func parseTimeRange(tr TimeRangeRequest) (domain.TimeRange, error) {
	start, err := types.NewTimeStringFromString(tr.Start)
	if err != nil {
		return domain.TimeRange{}, err
	}
	end, err := types.NewTimeStringFromString(tr.End)
	if err != nil {
		return domain.TimeRange{}, err
	}
	return domain.TimeRange{Start: start, End: end}, nil
}
