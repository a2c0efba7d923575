package calendar

import (
	"encoding/json"
	"time"
)

// Week - одна строка сетки месяца. Индекс 0 - воскресенье, 6 - суббота.
// Значение 0 означает пустую ячейку (день соседнего месяца).
type Week [7]int

// Matrix - сетка месяца по неделям. Содержит только недели, в которых есть хотя бы один день месяца.
type Matrix []Week

// MarshalJSON выводит пустые ячейки как null: [null,null,null,null,1,2,3].
func (w Week) MarshalJSON() ([]byte, error) {
	slots := make([]*int, len(w))
	for i, d := range w {
		if d != 0 {
			d := d
			slots[i] = &d
		}
	}
	return json.Marshal(slots)
}

func (w *Week) UnmarshalJSON(data []byte) error {
	var slots [7]*int
	if err := json.Unmarshal(data, &slots); err != nil {
		return err
	}
	for i, d := range slots {
		w[i] = 0
		if d != nil {
			w[i] = *d
		}
	}
	return nil
}

// Days возвращает все непустые ячейки по порядку.
func (m Matrix) Days() []int {
	days := make([]int, 0, 31)
	for _, week := range m {
		for _, d := range week {
			if d != 0 {
				days = append(days, d)
			}
		}
	}
	return days
}

// MonthMatrix строит сетку месяца month года year. Проверяются year, затем month.
func MonthMatrix(year, month string) (Matrix, error) {
	y, err := ParseYear(year)
	if err != nil {
		return nil, err
	}
	m, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}
	return MatrixOf(y, m), nil
}

// MatrixOf строит сетку для уже разобранных года и месяца.
func MatrixOf(y int, m time.Month) Matrix {
	dim := DaysInMonth(y, m)
	slot := int(firstWeekday(y, m))

	weeks := make(Matrix, 0, 6)
	var week Week
	for d := 1; d <= dim; d++ {
		week[slot] = d
		slot++

		if slot == len(week) || d == dim {
			weeks = append(weeks, week)
			week = Week{}
			slot = 0
		}
	}
	return weeks
}
