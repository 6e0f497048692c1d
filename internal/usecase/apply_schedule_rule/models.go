package apply_schedule_rule

import (
	"github.com/Cappie92/bookme-sub002/internal/domain"
)

// Request модель запроса на материализацию правила повторяемости
type Request struct {
	CallerID int64                 // ID вызывающего (для проверки прав)
	OwnerID  int64                 // ID работника, чье расписание материализуется
	Rule     domain.RecurrenceRule // Правило вместе с valid_until
}

// Response модель ответа материализации.
// Конфликты — не ошибка: запись в хранилище успешна, конфликтные слоты
// выставлены с флагом и ждут разрешения.
type Response struct {
	SlotsWritten int
	Conflicts    []domain.DayConflicts
}
