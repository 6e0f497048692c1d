package domain

// DaySummary сводка одного дня для месячного календаря
type DaySummary struct {
	HasWorking       bool
	HasConflict      bool
	DominantWorkType WorkType // пустое значение — в дне нет рабочих слотов
}

// SummarizeMonth сворачивает слоты месяца в сводку по датам за один проход.
// IsWorking и HasConflict объединяются через OR; доминирующий тип занятости —
// последний наблюденный тип рабочего слота внутри дня, что согласуется
// с семантикой "последняя запись выигрывает" хранилища слотов.
// Используется только для отображения, никогда для мутаций.
func SummarizeMonth(slots []ScheduleSlot) map[string]DaySummary {
	summary := make(map[string]DaySummary)

	for _, slot := range slots {
		key := slot.Date.Format(DateFormat)
		day := summary[key]

		if slot.IsWorking {
			day.HasWorking = true
			if slot.WorkType.IsValid() {
				day.DominantWorkType = slot.WorkType
			}
		}
		if slot.HasConflict {
			day.HasConflict = true
		}

		summary[key] = day
	}

	return summary
}
