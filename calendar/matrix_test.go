package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthMatrix(t *testing.T) {
	mx, err := MonthMatrix("2026", "January")
	require.NoError(t, err)

	expMx := Matrix{
		{0, 0, 0, 0, 1, 2, 3},
		{4, 5, 6, 7, 8, 9, 10},
		{11, 12, 13, 14, 15, 16, 17},
		{18, 19, 20, 21, 22, 23, 24},
		{25, 26, 27, 28, 29, 30, 31},
	}
	assert.Equal(t, expMx, mx)
}

func TestMonthMatrix_leapYear(t *testing.T) {
	mx, err := MonthMatrix("2024", "february")
	require.NoError(t, err)

	require.Len(t, mx, 5)
	assert.Equal(t, Week{0, 0, 0, 0, 1, 2, 3}, mx[0])
	assert.Equal(t, Week{25, 26, 27, 28, 29, 0, 0}, mx[4])
}

func TestMonthMatrix_extremes(t *testing.T) {
	// Февраль 2015: 1 число - воскресенье, 28 дней, ровно 4 недели.
	assert.Len(t, MatrixOf(2015, time.February), 4)

	// Август 2026: 1 число - суббота, 31 день, 6 недель.
	mx := MatrixOf(2026, time.August)
	require.Len(t, mx, 6)
	assert.Equal(t, Week{0, 0, 0, 0, 0, 0, 1}, mx[0])
	assert.Equal(t, Week{30, 31, 0, 0, 0, 0, 0}, mx[5])
}

func TestMonthMatrix_errors(t *testing.T) {
	_, err := MonthMatrix("0", "Smarch")
	assert.ErrorIs(t, err, ErrInvalidYear)

	_, err = MonthMatrix("2026", "Smarch")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestMatrixOf_properties(t *testing.T) {
	for y := 1; y <= 2400; y += 7 {
		for m := time.January; m <= time.December; m++ {
			mx := MatrixOf(y, m)
			assert.GreaterOrEqual(t, len(mx), 4)
			assert.LessOrEqual(t, len(mx), 6)

			days := mx.Days()
			require.Len(t, days, DaysInMonth(y, m))
			for i, d := range days {
				assert.Equal(t, i+1, d)
			}

			first := Date(y, m, 1).Weekday()
			assert.Equal(t, 1, mx[0][first], "%s %d", m, y)
		}
	}
}

func TestWeek_JSON(t *testing.T) {
	data, err := json.Marshal(Matrix{{0, 0, 0, 0, 1, 2, 3}})
	require.NoError(t, err)
	assert.JSONEq(t, `[[null,null,null,null,1,2,3]]`, string(data))

	var mx Matrix
	err = json.Unmarshal([]byte(`[[25,26,27,28,29,null,null]]`), &mx)
	require.NoError(t, err)
	assert.Equal(t, Matrix{{25, 26, 27, 28, 29, 0, 0}}, mx)
}
