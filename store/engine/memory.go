package engine

import (
	"sync"
	"time"

	"github.com/nvkalinin/days-calendar/calendar"
	"github.com/nvkalinin/days-calendar/store"
)

type Memory struct {
	mu    sync.RWMutex
	store store.Events
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) FindEvents() (store.Events, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.store) == 0 {
		return nil, false
	}
	return m.store.Copy(), true
}

func (m *Memory) FindMonth(mon time.Month) (store.Events, bool) {
	events, ok := m.FindEvents()
	if !ok {
		return nil, false
	}
	return filterMonth(events, mon)
}

func (m *Memory) PutEvents(events store.Events) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = events.Copy()
	return nil
}

// filterMonth оставляет события месяца mon в исходном порядке.
func filterMonth(events store.Events, mon time.Month) (store.Events, bool) {
	res := make(store.Events, 0, len(events))
	for _, ev := range events {
		if calendar.SameName(ev.Month, mon.String()) {
			res = append(res, ev)
		}
	}
	if len(res) == 0 {
		return nil, false
	}
	return res, true
}
