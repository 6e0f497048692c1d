package get_schedule_rule

import (
	"strconv"
	"time"

	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// TimeRangeResponse рабочий интервал внутри дня
type TimeRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ShiftResponse сменный график
type ShiftResponse struct {
	WorkDays  int               `json:"workDays"`
	RestDays  int               `json:"restDays"`
	StartDate string            `json:"startDate"`
	Time      TimeRangeResponse `json:"time"`
}

// ScheduleRuleResponse HTTP response model
type ScheduleRuleResponse struct {
	OwnerID    int64                        `json:"ownerId"`
	Type       string                       `json:"type"`
	WorkType   string                       `json:"workType"`
	ValidUntil string                       `json:"validUntil"`
	Weekdays   map[string]TimeRangeResponse `json:"weekdays,omitempty"`
	Monthdays  map[string]TimeRangeResponse `json:"monthdays,omitempty"`
	Shift      *ShiftResponse               `json:"shift,omitempty"`
	UpdatedAt  string                       `json:"updatedAt"`
}

// FromDomainRule конвертирует доменное правило в HTTP response
func FromDomainRule(rule *domain.RecurrenceRule) *ScheduleRuleResponse {
	resp := &ScheduleRuleResponse{
		OwnerID:    rule.OwnerID,
		Type:       string(rule.Type),
		WorkType:   string(rule.WorkType),
		ValidUntil: rule.ValidUntil.Format(domain.DateFormat),
		UpdatedAt:  rule.UpdatedAt.Format(time.RFC3339),
	}

	if len(rule.Weekdays) > 0 {
		resp.Weekdays = formatDayRanges(rule.Weekdays)
	}
	if len(rule.Monthdays) > 0 {
		resp.Monthdays = formatDayRanges(rule.Monthdays)
	}
	if rule.Shift != nil {
		resp.Shift = &ShiftResponse{
			WorkDays:  rule.Shift.WorkDays,
			RestDays:  rule.Shift.RestDays,
			StartDate: rule.Shift.StartDate.Format(domain.DateFormat),
			Time: TimeRangeResponse{
				Start: rule.Shift.Time.Start.String(),
				End:   rule.Shift.Time.End.String(),
			},
		}
	}

	return resp
}

func formatDayRanges(src map[int]domain.TimeRange) map[string]TimeRangeResponse {
	result := make(map[string]TimeRangeResponse, len(src))
	for day, tr := range src {
		result[strconv.Itoa(day)] = TimeRangeResponse{
			Start: tr.Start.String(),
			End:   tr.End.String(),
		}
	}
	return result
}
