package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nvkalinin/days-calendar/log"
	"github.com/nvkalinin/days-calendar/store"
	"github.com/robfig/cron/v3"
)

type Source interface {
	GetEvents() (store.Events, error)
}

type Store interface {
	PutEvents(events store.Events) error
}

type ProcOpts struct {
	Src      []Source      // Упорядоченный список источников памятных дней.
	Store    Store         // Куда сохранять итоговый набор (необязательно, если нужен только метод MakeDataset).
	Schedule cron.Schedule // Расписание RunUpdates.
}

type Processor struct {
	ProcOpts
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

func NewProcessor(opts ProcOpts) *Processor {
	return &Processor{
		ProcOpts: opts,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// ParseSchedule разбирает cron-выражение из 5 полей ("0 3 * * *") или дескриптор вида "@daily".
func ParseSchedule(spec string) (cron.Schedule, error) {
	s, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule '%s': %w", spec, err)
	}
	return s, nil
}

// RunUpdates обновляет набор событий по расписанию Schedule, пока не будет вызван Shutdown.
func (p *Processor) RunUpdates() {
	defer close(p.doneCh)

	t := time.NewTimer(p.untilNextRun())
	defer t.Stop()
	for {
		select {
		case <-t.C:
			if err := p.UpdateDataset(); err != nil {
				log.Printf("[WARN] calendar/proc cannot update dataset: %+v", err)
			}
			t.Reset(p.untilNextRun())

		case <-p.stopCh:
			return
		}
	}
}

func (p *Processor) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.stopCh) })

	select {
	case <-p.doneCh:
		return nil
	case <-ctx.Done():
		log.Printf("[WARN] calendar.Proc shutdown timeout")
		return ctx.Err()
	}
}

func (p *Processor) untilNextRun() time.Duration {
	now := time.Now()
	d := p.Schedule.Next(now).Sub(now)
	if d < 0 {
		d = 0
	}
	return d
}

// UpdateDataset собирает события из источников и сохраняет их в Store.
// Пустой результат не сохраняется, чтобы сбой всех источников не стер уже загруженные данные.
func (p *Processor) UpdateDataset() error {
	events := p.MakeDataset()
	if len(events) == 0 {
		log.Printf("[WARN] calendar/proc dataset is empty, store is left untouched")
		return nil
	}

	if err := p.Store.PutEvents(events); err != nil {
		return fmt.Errorf("calendar/proc cannot store dataset: %w", err)
	}
	log.Printf("[INFO] calendar/proc stored %d events", len(events))
	return nil
}

// MakeDataset собирает набор событий из источников Src.
// Если два источника возвращают событие с одним именем (store.Event.Key), событие из последнего заменяет
// событие из первого, сохраняя его позицию. Новые события добавляются в конец.
// Источник с ошибкой пропускается. События, которые нельзя разобрать, отбрасываются.
func (p *Processor) MakeDataset() store.Events {
	var events store.Events

	for i, src := range p.Src {
		srcEvents, err := src.GetEvents()
		if err != nil {
			log.Printf("[WARN] calendar/proc skipping source %d (%T), error: %+v", i, src, err)
			continue
		}

		events = merge(events, srcEvents)
	}

	return validOnly(events)
}

func merge(e1 store.Events, e2 store.Events) store.Events {
	res := e1.Copy()
	for _, ev := range e2 {
		if i := res.Index(ev.Key()); i >= 0 {
			res[i] = ev
			continue
		}
		res = append(res, ev)
	}
	return res
}

func validOnly(events store.Events) store.Events {
	res := make(store.Events, 0, len(events))
	for _, ev := range events {
		if err := Validate(ev); err != nil {
			log.Printf("[WARN] calendar/proc skipping event '%s': %v", ev.Name, err)
			continue
		}
		res = append(res, ev)
	}
	return res
}
