// Package export формирует iCalendar (RFC 5545) из набора памятных дней.
//
// По умолчанию каждое событие разворачивается в отдельный VEVENT на каждый год диапазона:
// так файл одинаково читают все календари. В режиме Recurring на событие выпускается один VEVENT
// с правилом RRULE:FREQ=YEARLY;BYMONTH=..;BYDAY=..
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/nvkalinin/days-calendar/calendar"
	"github.com/nvkalinin/days-calendar/log"
	"github.com/nvkalinin/days-calendar/store"
	"github.com/teambition/rrule-go"
)

const (
	DefaultFromYear  = 2020
	DefaultToYear    = 2030
	DefaultProductID = "-//Days Calendar//EN"

	uidDomain = "days-calendar"
	dateFmt   = "20060102"
)

// uidNamespace - пространство имен для UUIDv5: один и тот же день события всегда получает один и тот же UID,
// поэтому повторный импорт файла обновляет события, а не дублирует их.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/nvkalinin/days-calendar"))

type Options struct {
	FromYear  int // Первый год диапазона, включительно.
	ToYear    int // Последний год диапазона, включительно.
	Recurring bool

	// SkipMissing пропускает годы, в которых дня нет (например, пятой пятницы).
	// В режиме Recurring пропускается событие, которого нет ни в одном году диапазона.
	// Без него такая ситуация считается ошибкой.
	SkipMissing bool

	ProductID string
	Now       func() time.Time // Время для DTSTAMP, по умолчанию time.Now.
}

func DefaultOptions() Options {
	return Options{
		FromYear:  DefaultFromYear,
		ToYear:    DefaultToYear,
		ProductID: DefaultProductID,
		Now:       time.Now,
	}
}

func (o *Options) normalize() error {
	if o.FromYear < 1 {
		return fmt.Errorf("export: invalid first year %d", o.FromYear)
	}
	if o.ToYear < o.FromYear {
		return fmt.Errorf("export: last year %d is before first year %d", o.ToYear, o.FromYear)
	}
	if o.ProductID == "" {
		o.ProductID = DefaultProductID
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return nil
}

// Write выводит календарь в w.
func Write(w io.Writer, events store.Events, opts Options) error {
	cal, err := Calendar(events, opts)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("export cannot write calendar: %w", err)
	}
	return nil
}

// Calendar строит VCALENDAR для events в диапазоне лет opts.
func Calendar(events store.Events, opts Options) (*ics.Calendar, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetVersion("2.0")
	cal.SetProductId(opts.ProductID)

	stamp := opts.Now().UTC()

	var err error
	if opts.Recurring {
		err = addRecurring(cal, events, opts, stamp)
	} else {
		err = addExpanded(cal, events, opts, stamp)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[DEBUG] export built %d vevents for %d-%d", len(cal.Events()), opts.FromYear, opts.ToYear)
	return cal, nil
}

func addExpanded(cal *ics.Calendar, events store.Events, opts Options, stamp time.Time) error {
	for y := opts.FromYear; y <= opts.ToYear; y++ {
		for _, ev := range events {
			date, err := calendar.NthWeekday(strconv.Itoa(y), ev.Month, ev.Weekday, ev.Occurrence)
			if err != nil {
				if opts.SkipMissing && errors.Is(err, calendar.ErrOccurrenceNotFound) {
					log.Printf("[WARN] export skipping '%s' in %d: %v", ev.Name, y, err)
					continue
				}
				return fmt.Errorf("export cannot resolve '%s' in %d: %w", ev.Name, y, err)
			}

			addAllDay(cal, ev.Name, date, stamp)
		}
	}
	return nil
}

func addRecurring(cal *ics.Calendar, events store.Events, opts Options, stamp time.Time) error {
	for _, ev := range events {
		first, rule, err := yearlyRule(ev, opts)
		if err != nil {
			if opts.SkipMissing && errors.Is(err, calendar.ErrOccurrenceNotFound) {
				log.Printf("[WARN] export skipping '%s': %v", ev.Name, err)
				continue
			}
			return fmt.Errorf("export cannot build rule for '%s': %w", ev.Name, err)
		}

		vevent := addAllDay(cal, ev.Name, first, stamp)
		vevent.AddRrule(rule)
	}
	return nil
}

func addAllDay(cal *ics.Calendar, name string, date, stamp time.Time) *ics.VEvent {
	start := date.Format(dateFmt)

	vevent := cal.AddEvent(eventUID(name, start))
	vevent.SetDtStampTime(stamp)
	vevent.SetSummary(name)
	vevent.SetAllDayStartAt(date)
	// Конец не включается: событие на весь день длится до полуночи следующего дня.
	vevent.SetAllDayEndAt(date.AddDate(0, 0, 1))
	return vevent
}

func eventUID(name, start string) string {
	return uuid.NewSHA1(uidNamespace, []byte(name+"-"+start)).String() + "@" + uidDomain
}

// yearlyRule возвращает первую дату события в диапазоне и правило повторения до конца ToYear.
func yearlyRule(ev store.Event, opts Options) (time.Time, string, error) {
	occ, err := calendar.ParseOccurrence(ev.Occurrence)
	if err != nil {
		return time.Time{}, "", err
	}
	m, err := calendar.ParseMonth(ev.Month)
	if err != nil {
		return time.Time{}, "", err
	}
	wd, err := calendar.ParseWeekday(ev.Weekday)
	if err != nil {
		return time.Time{}, "", err
	}

	first, err := firstInRange(m, wd, occ, opts)
	if err != nil {
		return time.Time{}, "", err
	}

	rwd := weekday(wd)
	rule := rrule.ROption{
		Freq:      rrule.YEARLY,
		Bymonth:   []int{int(m)},
		Byweekday: []rrule.Weekday{rwd.Nth(int(occ))},
	}
	// DTSTART - дата без времени, поэтому и UNTIL должен быть датой (RFC 5545, 3.3.10).
	until := calendar.Date(opts.ToYear, time.December, 31).Format(dateFmt)
	return first, rule.String() + ";UNTIL=" + until, nil
}

func firstInRange(m time.Month, wd time.Weekday, occ calendar.Occurrence, opts Options) (time.Time, error) {
	var lastErr error
	for y := opts.FromYear; y <= opts.ToYear; y++ {
		date, err := calendar.NthWeekdayOf(y, m, wd, occ)
		if err == nil {
			return date, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func weekday(wd time.Weekday) rrule.Weekday {
	// @formatter:off
	switch wd {
	case time.Monday:    return rrule.MO
	case time.Tuesday:   return rrule.TU
	case time.Wednesday: return rrule.WE
	case time.Thursday:  return rrule.TH
	case time.Friday:    return rrule.FR
	case time.Saturday:  return rrule.SA
	default:             return rrule.SU
	}
	// @formatter:on
}
