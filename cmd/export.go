package cmd

import (
	"fmt"
	"os"

	"github.com/nvkalinin/days-calendar/export"
	"github.com/nvkalinin/days-calendar/log"
	"github.com/nvkalinin/days-calendar/source"
)

type Export struct {
	Data        string `long:"data" short:"i" env:"DATA" value-name:"days.json" default:"days.json" description:"JSON-файл с набором памятных дней."`
	Out         string `long:"out" short:"o" env:"OUT" value-name:"path" default:"days.ics" description:"Куда записать календарь."`
	From        int    `long:"from" env:"FROM" value-name:"year" default:"2020" description:"Первый год, включительно."`
	To          int    `long:"to" env:"TO" value-name:"year" default:"2030" description:"Последний год, включительно."`
	Recurring   bool   `long:"recurring" env:"RECURRING" description:"Одно повторяющееся событие (RRULE) вместо отдельного события на каждый год."`
	SkipMissing bool   `long:"skip-missing" env:"SKIP_MISSING" description:"Пропускать годы, в которых дня нет (например, пятой пятницы), вместо ошибки."`
}

func (e *Export) Execute(args []string) error {
	events, err := (&source.File{Path: e.Data}).GetEvents()
	if err != nil {
		return err
	}

	opts := export.DefaultOptions()
	opts.FromYear = e.From
	opts.ToYear = e.To
	opts.Recurring = e.Recurring
	opts.SkipMissing = e.SkipMissing

	f, err := os.Create(e.Out)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", e.Out, err)
	}

	if err := export.Write(f, events, opts); err != nil {
		_ = f.Close()
		_ = os.Remove(e.Out)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", e.Out, err)
	}

	log.Printf("[INFO] %s generated", e.Out)
	return nil
}
