package calendar

import (
	"fmt"
	"strconv"
	"time"
)

// PreviousMonth возвращает название и год предыдущего месяца: ("January", "2026") -> ("December", "2025").
// Название месяца на выходе всегда в каноническом виде.
func PreviousMonth(month, year string) (string, string, error) {
	return shift(month, year, PrevMonthOf)
}

// NextMonth возвращает название и год следующего месяца: ("December", "2026") -> ("January", "2027").
func NextMonth(month, year string) (string, string, error) {
	return shift(month, year, NextMonthOf)
}

func PrevMonthOf(y int, m time.Month) (int, time.Month) {
	if m == time.January {
		return y - 1, time.December
	}
	return y, m - 1
}

func NextMonthOf(y int, m time.Month) (int, time.Month) {
	if m == time.December {
		return y + 1, time.January
	}
	return y, m + 1
}

func shift(month, year string, fn func(int, time.Month) (int, time.Month)) (string, string, error) {
	m, err := ParseMonth(month)
	if err != nil {
		return "", "", err
	}
	y, err := ParseYear(year)
	if err != nil {
		return "", "", err
	}

	ny, nm := fn(y, m)
	if ny < 1 {
		return "", "", fmt.Errorf("%w: %s %d is before %s %d", ErrInvalidYear, nm, ny, m, 1)
	}
	return nm.String(), strconv.Itoa(ny), nil
}
