package calendar

import "errors"

// Ошибки разбора и вычисления дат. Все функции пакета оборачивают их через %w,
// поэтому вызывающий код проверяет тип ошибки с помощью errors.Is.
var (
	ErrInvalidOccurrence  = errors.New("invalid occurrence")
	ErrInvalidYear        = errors.New("invalid year")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidWeekday     = errors.New("invalid day")
	ErrOccurrenceNotFound = errors.New("occurrence not found")
)
