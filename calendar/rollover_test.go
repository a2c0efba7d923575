package calendar

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviousMonth(t *testing.T) {
	m, y, err := PreviousMonth("January", "2026")
	require.NoError(t, err)
	assert.Equal(t, "December", m)
	assert.Equal(t, "2025", y)

	m, y, err = PreviousMonth("march", "2026")
	require.NoError(t, err)
	assert.Equal(t, "February", m)
	assert.Equal(t, "2026", y)
}

func TestNextMonth(t *testing.T) {
	m, y, err := NextMonth("December", "2026")
	require.NoError(t, err)
	assert.Equal(t, "January", m)
	assert.Equal(t, "2027", y)

	m, y, err = NextMonth("JANUARY", "2026")
	require.NoError(t, err)
	assert.Equal(t, "February", m)
	assert.Equal(t, "2026", y)
}

func TestRollover_roundTrip(t *testing.T) {
	for _, year := range []int{1, 2, 1999, 2000, 2026, 9999} {
		for mon := time.January; mon <= time.December; mon++ {
			ys := strconv.Itoa(year)

			nm, ny, err := NextMonth(mon.String(), ys)
			require.NoError(t, err)
			pm, py, err := PreviousMonth(nm, ny)
			require.NoError(t, err)
			assert.Equal(t, mon.String(), pm)
			assert.Equal(t, ys, py)

			if year == 1 && mon == time.January {
				continue
			}
			pm, py, err = PreviousMonth(mon.String(), ys)
			require.NoError(t, err)
			nm, ny, err = NextMonth(pm, py)
			require.NoError(t, err)
			assert.Equal(t, mon.String(), nm)
			assert.Equal(t, ys, ny)
		}
	}
}

func TestRollover_errors(t *testing.T) {
	_, _, err := PreviousMonth("January", "1")
	assert.ErrorIs(t, err, ErrInvalidYear)

	_, _, err = NextMonth("Smarch", "2026")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, _, err = NextMonth("May", "")
	assert.ErrorIs(t, err, ErrInvalidYear)
}
