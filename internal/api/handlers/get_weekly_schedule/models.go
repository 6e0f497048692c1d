package get_weekly_schedule

import (
	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/domain"
	"github.com/Cappie92/bookme-sub002/internal/service/schedule/models"
)

// DayResponse слоты одного дня недели
type DayResponse struct {
	Date  string                  `json:"date"`
	Slots []handlers.SlotResponse `json:"slots"`
}

// WeeklyScheduleResponse HTTP response model
type WeeklyScheduleResponse struct {
	OwnerID   int64         `json:"ownerId"`
	WeekStart string        `json:"weekStart"`
	Days      []DayResponse `json:"days"`
}

// FromServiceModel конвертирует модель сервиса в HTTP response
func FromServiceModel(week *models.WeeklySchedule) *WeeklyScheduleResponse {
	days := make([]DayResponse, 0, len(week.Days))
	for _, day := range week.Days {
		days = append(days, DayResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: handlers.FromServiceSlots(day.Slots),
		})
	}
	return &WeeklyScheduleResponse{
		OwnerID:   week.OwnerID,
		WeekStart: week.WeekStart.Format(domain.DateFormat),
		Days:      days,
	}
}
