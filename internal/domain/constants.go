package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Шаг сетки слотов в минутах по типу занятости
const (
	PersonalSlotStepMinutes = 10
	SalonSlotStepMinutes    = 30
)

// Business validation constants
const (
	MinWeekdayNumber  = 1 // Monday
	MaxWeekdayNumber  = 7 // Sunday
	MinMonthdayNumber = 1
	MaxMonthdayNumber = 31
	MinShiftDays      = 1
	MaxShiftDays      = 31

	// MaxRuleWindowDays ограничивает окно материализации правила,
	// чтобы один запрос не порождал неограниченное число слотов
	MaxRuleWindowDays = 366
)

// Размерность недельной сетки для прямоугольного выделения
const (
	MinDayIndex = 0 // Monday
	MaxDayIndex = 6 // Sunday
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60
