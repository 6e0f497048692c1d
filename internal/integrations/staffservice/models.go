package staffservice

// Worker модель работника из StaffService
type Worker struct {
	ID         int64   `json:"id"`
	SalonID    int64   `json:"salon_id"`
	Name       string  `json:"name"`
	ManagerIDs []int64 `json:"manager_ids"`
	IsActive   bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
