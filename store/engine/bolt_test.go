package engine

import (
	"os"
	"testing"
	"time"

	"github.com/nvkalinin/days-calendar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBolt(t *testing.T) {
	b, _ := makeBolt(t)
	defer b.Close()

	_, ok := b.FindEvents()
	assert.False(t, ok, "empty store")

	err := b.PutEvents(sampleDays)
	require.NoError(t, err)

	events, ok := b.FindEvents()
	assert.True(t, ok)
	assert.Equal(t, sampleDays, events)

	events, ok = b.FindMonth(time.October)
	assert.True(t, ok)
	assert.Equal(t, store.Events{sampleDays[0], sampleDays[2]}, events)

	_, ok = b.FindMonth(time.March)
	assert.False(t, ok)
}

func TestBolt_replace(t *testing.T) {
	b, _ := makeBolt(t)
	defer b.Close()

	require.NoError(t, b.PutEvents(sampleDays))
	require.NoError(t, b.PutEvents(sampleDays[2:]))

	events, ok := b.FindEvents()
	assert.True(t, ok)
	assert.Equal(t, sampleDays[2:], events)
}

func TestBolt_order(t *testing.T) {
	b, _ := makeBolt(t)
	defer b.Close()

	// Больше 10 событий: ключи должны сортироваться как числа.
	many := make(store.Events, 0, 12)
	for i := 0; i < 12; i++ {
		many = append(many, store.Event{Name: string(rune('a' + i)), Month: "May", Weekday: "Monday", Occurrence: "first"})
	}
	require.NoError(t, b.PutEvents(many))

	events, ok := b.FindEvents()
	assert.True(t, ok)
	assert.Equal(t, many, events)
}

func TestBolt_backup(t *testing.T) {
	b, dir := makeBolt(t)

	err := b.PutEvents(sampleDays)
	require.NoError(t, err)

	f, err := os.Create(dir + "/backup.bolt")
	require.NoError(t, err)

	err = b.Backup(f)
	require.NoError(t, err)

	err = f.Close()
	require.NoError(t, err)
	err = b.Close()
	require.NoError(t, err)

	// Создать Bolt из бекапа и проверить, что все данные там.
	b, err = NewBolt(dir + "/backup.bolt")
	require.NoError(t, err)
	defer b.Close()

	events, ok := b.FindEvents()
	assert.True(t, ok)
	assert.Equal(t, sampleDays, events)
}

func makeBolt(t *testing.T) (b *Bolt, dir string) {
	dir = t.TempDir()
	b, err := NewBolt(dir + "/db.bolt")
	require.NoError(t, err)
	return b, dir
}
