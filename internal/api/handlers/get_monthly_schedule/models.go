package get_monthly_schedule

import (
	"github.com/Cappie92/bookme-sub002/internal/api/handlers"
	"github.com/Cappie92/bookme-sub002/internal/domain"
	"github.com/Cappie92/bookme-sub002/internal/service/schedule/models"
)

// DaySummaryResponse сводка одного дня месяца
type DaySummaryResponse struct {
	Date             string `json:"date"`
	HasWorking       bool   `json:"hasWorking"`
	HasConflict      bool   `json:"hasConflict"`
	DominantWorkType string `json:"dominantWorkType,omitempty"`
}

// MonthlyScheduleResponse HTTP response model
type MonthlyScheduleResponse struct {
	OwnerID int64                   `json:"ownerId"`
	Year    int                     `json:"year"`
	Month   int                     `json:"month"`
	Days    []DaySummaryResponse    `json:"days"`
	Slots   []handlers.SlotResponse `json:"slots"`
}

// FromServiceModel конвертирует модель сервиса в HTTP response
func FromServiceModel(month *models.MonthlySchedule) *MonthlyScheduleResponse {
	days := make([]DaySummaryResponse, 0, len(month.Days))
	for _, day := range month.Days {
		days = append(days, DaySummaryResponse{
			Date:             day.Date.Format(domain.DateFormat),
			HasWorking:       day.HasWorking,
			HasConflict:      day.HasConflict,
			DominantWorkType: string(day.DominantWorkType),
		})
	}
	return &MonthlyScheduleResponse{
		OwnerID: month.OwnerID,
		Year:    month.Year,
		Month:   int(month.Month),
		Days:    days,
		Slots:   handlers.FromServiceSlots(month.Slots),
	}
}
