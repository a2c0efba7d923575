package calendar

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/cases"
)

// Occurrence - какой по счету день недели в месяце нужен: первый..пятый или последний.
type Occurrence int

const (
	First  Occurrence = 1
	Second Occurrence = 2
	Third  Occurrence = 3
	Fourth Occurrence = 4
	Fifth  Occurrence = 5
	Last   Occurrence = -1
)

var occurrenceNames = map[Occurrence]string{
	First:  "first",
	Second: "second",
	Third:  "third",
	Fourth: "fourth",
	Fifth:  "fifth",
	Last:   "last",
}

func (o Occurrence) String() string {
	if name, ok := occurrenceNames[o]; ok {
		return name
	}
	return "occurrence(" + strconv.Itoa(int(o)) + ")"
}

func (o Occurrence) valid() bool {
	_, ok := occurrenceNames[o]
	return ok
}

var (
	monthsByName   = make(map[string]time.Month, 12)
	weekdaysByName = make(map[string]time.Weekday, 7)
	occurrByName   = make(map[string]Occurrence, len(occurrenceNames))
)

func init() {
	for m := time.January; m <= time.December; m++ {
		monthsByName[fold(m.String())] = m
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		weekdaysByName[fold(wd.String())] = wd
	}
	for occ, name := range occurrenceNames {
		occurrByName[name] = occ
	}
}

// fold приводит имя к виду для сравнения без учета регистра.
// cases.Caser хранит состояние, поэтому на каждый вызов создается новый.
func fold(s string) string {
	return cases.Fold().String(s)
}

// SameName сравнивает два имени месяца (или дня недели) без учета регистра.
func SameName(a, b string) bool {
	return fold(a) == fold(b)
}

// ParseOccurrence принимает first, second, third, fourth, fifth или last.
func ParseOccurrence(s string) (Occurrence, error) {
	occ, ok := occurrByName[fold(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidOccurrence, s)
	}
	return occ, nil
}

// ParseYear принимает целое число >= 1.
func ParseYear(s string) (int, error) {
	y, err := strconv.Atoi(s)
	if err != nil || y < 1 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidYear, s)
	}
	return y, nil
}

// ParseMonth принимает английское название месяца в любом регистре.
func ParseMonth(s string) (time.Month, error) {
	m, ok := monthsByName[fold(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMonth, s)
	}
	return m, nil
}

// ParseWeekday принимает английское название дня недели в любом регистре.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdaysByName[fold(s)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrInvalidWeekday, s)
	}
	return wd, nil
}

func checkYear(y int) error {
	if y < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, y)
	}
	return nil
}

func checkMonth(m time.Month) error {
	if m < time.January || m > time.December {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, m)
	}
	return nil
}
