package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nvkalinin/days-calendar/calendar"
	"github.com/nvkalinin/days-calendar/source"
)

type Show struct {
	Data  string `long:"data" short:"i" env:"DATA" value-name:"days.json" default:"days.json" description:"JSON-файл с набором памятных дней."`
	Year  string `long:"year" short:"y" value-name:"year" description:"Год. По умолчанию текущий."`
	Month string `long:"month" short:"m" value-name:"name" description:"Месяц (название или номер). По умолчанию текущий."`

	out io.Writer
	now func() time.Time
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dayStyle     = lipgloss.NewStyle().Width(3).Align(lipgloss.Right)
	weekendStyle = dayStyle.Foreground(lipgloss.Color("245"))
	eventStyle   = dayStyle.Bold(true).Foreground(lipgloss.Color("203"))
	listStyle    = lipgloss.NewStyle().MarginTop(1)
)

func (s *Show) Execute(args []string) error {
	now := time.Now()
	if s.now != nil {
		now = s.now()
	}

	year := s.Year
	if year == "" {
		year = strconv.Itoa(now.Year())
	}
	month := s.Month
	if month == "" {
		month = now.Month().String()
	} else if n, err := strconv.Atoi(month); err == nil && n >= int(time.January) && n <= int(time.December) {
		month = time.Month(n).String()
	}

	weeks, err := calendar.MonthMatrix(year, month)
	if err != nil {
		return err
	}

	events, err := (&source.File{Path: s.Data}).GetEvents()
	if err != nil {
		return err
	}
	resolved, err := calendar.OccurringEvents(events, month, year)
	if err != nil {
		return err
	}

	out := s.out
	if out == nil {
		out = os.Stdout
	}
	_, err = fmt.Fprintln(out, renderMonth(month, year, weeks, resolved))
	return err
}

func renderMonth(month, year string, weeks calendar.Matrix, events []calendar.Resolved) string {
	m, _ := calendar.ParseMonth(month)

	marked := make(map[int]bool, len(events))
	for _, ev := range events {
		marked[ev.Date] = true
	}

	var grid strings.Builder
	head := make([]string, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		head[wd] = dayStyle.Render(wd.String()[:2])
	}
	grid.WriteString(headStyle.Render(strings.Join(head, "")) + "\n")

	for _, week := range weeks {
		cells := make([]string, len(week))
		for i, d := range week {
			style := dayStyle
			switch {
			case marked[d]:
				style = eventStyle
			case time.Weekday(i) == time.Sunday || time.Weekday(i) == time.Saturday:
				style = weekendStyle
			}

			text := ""
			if d != 0 {
				text = strconv.Itoa(d)
			}
			cells[i] = style.Render(text)
		}
		grid.WriteString(strings.Join(cells, "") + "\n")
	}

	var list strings.Builder
	for _, ev := range events {
		fmt.Fprintf(&list, "%2d  %s\n", ev.Date, ev.Event)
	}
	if len(events) == 0 {
		list.WriteString("no events\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("%s %s", m, year)),
		grid.String(),
		listStyle.Render(strings.TrimRight(list.String(), "\n")),
	)
}
