package handlers

import (
	"github.com/Cappie92/bookme-sub002/internal/domain"
	"github.com/Cappie92/bookme-sub002/internal/service/schedule/models"
)

// SlotResponse представление слота расписания в HTTP ответах
type SlotResponse struct {
	Key          string `json:"key"`
	Date         string `json:"date"`
	Hour         int    `json:"hour"`
	Minute       int    `json:"minute"`
	IsWorking    bool   `json:"isWorking"`
	WorkType     string `json:"workType"`
	HasConflict  bool   `json:"hasConflict,omitempty"`
	ConflictType string `json:"conflictType,omitempty"`
}

// ConflictResponse представление конфликта в HTTP ответах
type ConflictResponse struct {
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	ConflictType string `json:"conflictType"`
	WorkType     string `json:"workType"`
}

// DayConflictsResponse конфликты одной даты
type DayConflictsResponse struct {
	Date      string             `json:"date"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

// FromServiceSlot конвертирует модель слота сервиса в HTTP response
func FromServiceSlot(slot models.Slot) SlotResponse {
	resp := SlotResponse{
		Key:       slot.Key,
		Date:      slot.Date.Format(domain.DateFormat),
		Hour:      slot.Hour,
		Minute:    slot.Minute,
		IsWorking: slot.IsWorking,
		WorkType:  string(slot.WorkType),
	}
	if slot.HasConflict {
		resp.HasConflict = true
		resp.ConflictType = string(slot.ConflictType)
	}
	return resp
}

// FromServiceSlots конвертирует слайс моделей слотов
func FromServiceSlots(slots []models.Slot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, FromServiceSlot(slot))
	}
	return result
}

// FromDayConflicts конвертирует сгруппированные конфликты в HTTP response
func FromDayConflicts(days []domain.DayConflicts) []DayConflictsResponse {
	result := make([]DayConflictsResponse, 0, len(days))
	for _, day := range days {
		conflicts := make([]ConflictResponse, 0, len(day.Conflicts))
		for _, c := range day.Conflicts {
			conflicts = append(conflicts, ConflictResponse{
				StartTime:    c.StartTime.String(),
				EndTime:      c.EndTime.String(),
				ConflictType: string(c.ConflictType),
				WorkType:     string(c.WorkType),
			})
		}
		result = append(result, DayConflictsResponse{
			Date:      day.Date.Format(domain.DateFormat),
			Conflicts: conflicts,
		})
	}
	return result
}
