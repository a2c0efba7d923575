package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nvkalinin/days-calendar/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd(t *testing.T) {
	out := filepath.Join(t.TempDir(), "days.ics")
	cmd := &Export{Data: "testdata/days.json", Out: out, From: 2025, To: 2026}
	require.NoError(t, cmd.Execute(nil))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	ics := string(data)

	assert.Equal(t, 6, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20251014")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20261013")
	assert.NotContains(t, ics, "RRULE")

	cmd.Recurring = true
	require.NoError(t, cmd.Execute(nil))
	data, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "BEGIN:VEVENT"))
	assert.Equal(t, 3, strings.Count(string(data), "RRULE:"))
	assert.Equal(t, 3, strings.Count(string(data), ";UNTIL=20261231"))
	assert.NotContains(t, string(data), "UNTIL=20261231T")
}

func TestExportCmd_missingOccurrence(t *testing.T) {
	out := filepath.Join(t.TempDir(), "days.ics")
	cmd := &Export{Data: "testdata/fifth.json", Out: out, From: 2015, To: 2017}

	err := cmd.Execute(nil)
	assert.ErrorIs(t, err, calendar.ErrOccurrenceNotFound)
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "no partial file")

	cmd.SkipMissing = true
	require.NoError(t, cmd.Execute(nil))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "BEGIN:VEVENT"))
	assert.Contains(t, string(data), "DTSTART;VALUE=DATE:20160229")
}

func TestExportCmd_fail(t *testing.T) {
	dir := t.TempDir()

	cmd := &Export{Data: filepath.Join(dir, "nope.json"), Out: filepath.Join(dir, "days.ics"), From: 2020, To: 2030}
	assert.ErrorContains(t, cmd.Execute(nil), "source/file cannot read")

	cmd = &Export{Data: "testdata/days.json", Out: filepath.Join(dir, "days.ics"), From: 2030, To: 2020}
	assert.ErrorContains(t, cmd.Execute(nil), "is before first year")

	cmd = &Export{Data: "testdata/days.json", Out: filepath.Join(dir, "no-such-dir", "days.ics"), From: 2020, To: 2030}
	assert.ErrorContains(t, cmd.Execute(nil), "cannot create")
}
