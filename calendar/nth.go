// Package calendar вычисляет даты памятных дней ("второй вторник октября"), строит сетку месяца
// и переключает месяцы. Все функции чистые: не хранят состояние и безопасны для конкурентного вызова.
//
// Даты возвращаются как time.Time на полночь UTC, чтобы часовой пояс не мог сдвинуть день месяца.
package calendar

import (
	"fmt"
	"time"
)

// NthWeekday возвращает дату occurrence-го дня недели weekday в месяце month года year.
// Например, NthWeekday("2026", "January", "Friday", "first") = 2 января 2026.
//
// Аргументы проверяются в порядке occurrence, year, month, weekday; возвращается первая найденная ошибка.
func NthWeekday(year, month, weekday, occurrence string) (time.Time, error) {
	occ, err := ParseOccurrence(occurrence)
	if err != nil {
		return time.Time{}, err
	}
	y, err := ParseYear(year)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ParseMonth(month)
	if err != nil {
		return time.Time{}, err
	}
	wd, err := ParseWeekday(weekday)
	if err != nil {
		return time.Time{}, err
	}
	return NthWeekdayOf(y, m, wd, occ)
}

// NthWeekdayOf - то же, что NthWeekday, но для уже разобранных значений.
func NthWeekdayOf(y int, m time.Month, wd time.Weekday, occ Occurrence) (time.Time, error) {
	if !occ.valid() {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidOccurrence, occ)
	}
	if err := checkYear(y); err != nil {
		return time.Time{}, err
	}
	if err := checkMonth(m); err != nil {
		return time.Time{}, err
	}
	if wd < time.Sunday || wd > time.Saturday {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidWeekday, wd)
	}

	var day int
	if occ == Last {
		// Число вхождений дня недели в месяце бывает 4 или 5, поэтому последний ищется перебором.
		days := Occurrences(y, m, wd)
		day = days[len(days)-1]
	} else {
		day = firstOccurrence(y, m, wd) + (int(occ)-1)*7
		if day > DaysInMonth(y, m) {
			return time.Time{}, fmt.Errorf("%w: the %s %s does not exist in %s %d",
				ErrOccurrenceNotFound, occ, wd, m, y)
		}
	}

	return Date(y, m, day), nil
}

// Occurrences возвращает все дни месяца, выпадающие на день недели wd, по возрастанию.
func Occurrences(y int, m time.Month, wd time.Weekday) []int {
	dim := DaysInMonth(y, m)
	days := make([]int, 0, 5)
	for d := firstOccurrence(y, m, wd); d <= dim; d += 7 {
		days = append(days, d)
	}
	return days
}

// DaysInMonth - номер последнего дня месяца с учетом високосных лет.
func DaysInMonth(y int, m time.Month) int {
	// day=0 нормализуется: будет выбран последний день предыдущего месяца.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date возвращает полночь UTC указанного дня.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func firstWeekday(y int, m time.Month) time.Weekday {
	return Date(y, m, 1).Weekday()
}

func firstOccurrence(y int, m time.Month, wd time.Weekday) int {
	offset := (int(wd) - int(firstWeekday(y, m)) + 7) % 7
	return 1 + offset
}
