package calendar

import (
	"errors"

	"github.com/nvkalinin/days-calendar/store"
)

// Resolved - событие, привязанное к конкретному дню месяца.
type Resolved struct {
	Event string `json:"event"`
	Date  int    `json:"date"`
}

// EventsForMonth выбирает из events события месяца month (без учета регистра) и вычисляет их дни в году year.
// Порядок событий сохраняется. Первая ошибка NthWeekday возвращается как есть.
func EventsForMonth(events store.Events, month, year string) ([]Resolved, error) {
	res := make([]Resolved, 0)
	for _, ev := range events {
		if !SameName(ev.Month, month) {
			continue
		}

		date, err := NthWeekday(year, month, ev.Weekday, ev.Occurrence)
		if err != nil {
			return nil, err
		}
		res = append(res, Resolved{Event: ev.Name, Date: date.Day()})
	}
	return res, nil
}

// Validate проверяет, что определение события можно разобрать.
// Существование дня (например, пятой пятницы) зависит от года и здесь не проверяется.
func Validate(ev store.Event) error {
	if _, err := ParseOccurrence(ev.Occurrence); err != nil {
		return err
	}
	if _, err := ParseMonth(ev.Month); err != nil {
		return err
	}
	if _, err := ParseWeekday(ev.Weekday); err != nil {
		return err
	}
	return nil
}

// OccurringEvents работает как EventsForMonth, но пропускает события, которых в этом месяце нет
// (например, пятого понедельника). Остальные ошибки возвращаются как есть.
func OccurringEvents(events store.Events, month, year string) ([]Resolved, error) {
	res := make([]Resolved, 0)
	for _, ev := range events {
		found, err := EventsForMonth(store.Events{ev}, month, year)
		if errors.Is(err, ErrOccurrenceNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		res = append(res, found...)
	}
	return res, nil
}
