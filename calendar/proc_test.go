package calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nvkalinin/days-calendar/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type SrcMock struct {
	events store.Events
	err    error
}

func (s SrcMock) GetEvents() (store.Events, error) {
	return s.events, s.err
}

type StoreMock struct {
	mu     sync.Mutex
	events store.Events
	puts   int
}

func (s *StoreMock) PutEvents(events store.Events) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events.Copy()
	s.puts++
	return nil
}

func (s *StoreMock) Puts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

type every200ms struct{}

func (every200ms) Next(t time.Time) time.Time {
	return t.Add(200 * time.Millisecond)
}

func TestProcessor_MakeDataset(t *testing.T) {
	src1 := SrcMock{events: store.Events{
		{Name: "Ada Lovelace Day", Month: "October", Weekday: "Tuesday", Occurrence: "first"},
		{Name: "World Lemur Day", Month: "October", Weekday: "Friday", Occurrence: "last"},
	}}
	src2 := SrcMock{err: errors.New("unavailable")}
	src3 := SrcMock{events: store.Events{
		{Name: "ada lovelace day", Month: "October", Weekday: "Tuesday", Occurrence: "second"}, // Заменяет событие из src1.
		{Name: "Broken Day", Month: "Smarch", Weekday: "Monday", Occurrence: "first"},         // Отбрасывается.
		{Name: "International Sloth Day", Month: "October", Weekday: "Monday", Occurrence: "third"},
	}}

	tmpStore := &StoreMock{}
	p := NewProcessor(ProcOpts{
		Src:   []Source{src1, src2, src3},
		Store: tmpStore,
	})
	err := p.UpdateDataset()
	require.NoError(t, err)

	expEvents := store.Events{
		{Name: "ada lovelace day", Month: "October", Weekday: "Tuesday", Occurrence: "second"},
		{Name: "World Lemur Day", Month: "October", Weekday: "Friday", Occurrence: "last"},
		{Name: "International Sloth Day", Month: "October", Weekday: "Monday", Occurrence: "third"},
	}
	assert.Equal(t, expEvents, tmpStore.events)
}

func TestProcessor_UpdateDataset_empty(t *testing.T) {
	tmpStore := &StoreMock{}
	p := NewProcessor(ProcOpts{
		Src:   []Source{SrcMock{err: errors.New("unavailable")}},
		Store: tmpStore,
	})

	err := p.UpdateDataset()
	assert.NoError(t, err)
	assert.Equal(t, 0, tmpStore.Puts())
}

func TestProcessor_RunUpdates(t *testing.T) {
	src := SrcMock{events: store.Events{
		{Name: "World Lemur Day", Month: "October", Weekday: "Friday", Occurrence: "last"},
	}}
	tmpStore := &StoreMock{}

	p := NewProcessor(ProcOpts{
		Src:      []Source{src},
		Store:    tmpStore,
		Schedule: every200ms{},
	})

	go p.RunUpdates()
	assert.Equal(t, 0, tmpStore.Puts())

	time.Sleep(1000 * time.Millisecond)
	assert.GreaterOrEqual(t, tmpStore.Puts(), 2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, p.Shutdown(ctx))
	assert.NoError(t, p.Shutdown(ctx), "repeated shutdown")
}

func TestParseSchedule(t *testing.T) {
	s, err := ParseSchedule("0 3 * * *")
	require.NoError(t, err)

	from := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2026, time.October, 20, 3, 0, 0, 0, time.Local), s.Next(from))

	_, err = ParseSchedule("@daily")
	assert.NoError(t, err)

	_, err = ParseSchedule("foo")
	assert.ErrorContains(t, err, "invalid schedule")
}
