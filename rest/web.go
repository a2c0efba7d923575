package rest

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nvkalinin/days-calendar/log"
)

const (
	minPickYear = 1900
	maxPickYear = 2100
)

//go:embed templates/month.html
var templates embed.FS

var monthTpl = template.Must(template.ParseFS(templates, "templates/month.html"))

type dayCell struct {
	Day     int // 0 - пустая клетка до первого или после последнего дня.
	Weekend bool
	Events  []string
}

type option struct {
	Value    string
	Selected bool
}

type monthPage struct {
	*monthView
	Rows   [][]dayCell
	Months []option
	Years  []option
}

func newMonthPage(v *monthView) *monthPage {
	p := &monthPage{monthView: v}

	byDay := make(map[int][]string, len(v.Events))
	for _, ev := range v.Events {
		byDay[ev.Date] = append(byDay[ev.Date], ev.Event)
	}

	for _, week := range v.Weeks {
		row := make([]dayCell, len(week))
		for i, d := range week {
			row[i] = dayCell{
				Day:     d,
				Weekend: time.Weekday(i) == time.Sunday || time.Weekday(i) == time.Saturday,
				Events:  byDay[d],
			}
			if d == 0 {
				row[i].Events = nil
			}
		}
		p.Rows = append(p.Rows, row)
	}

	for m := time.January; m <= time.December; m++ {
		p.Months = append(p.Months, option{Value: m.String(), Selected: m.String() == v.Month})
	}
	p.Years = yearOptions(v.Year)
	return p
}

// yearOptions - годы для выпадающего списка. Отображаемый год добавляется, даже если он вне диапазона.
func yearOptions(selected int) []option {
	res := make([]option, 0, maxPickYear-minPickYear+2)
	if selected < minPickYear {
		res = append(res, option{Value: fmt.Sprint(selected), Selected: true})
	}
	for y := minPickYear; y <= maxPickYear; y++ {
		res = append(res, option{Value: fmt.Sprint(y), Selected: y == selected})
	}
	if selected > maxPickYear {
		res = append(res, option{Value: fmt.Sprint(selected), Selected: true})
	}
	return res
}

func monthURL(year, month string) string {
	return "/cal/" + url.PathEscape(year) + "/" + url.PathEscape(month)
}

func (s *Server) rootCtrl(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	http.Redirect(w, r, monthURL(fmt.Sprint(now.Year()), now.Month().String()), http.StatusFound)
}

// pickCtrl обрабатывает форму выбора месяца: /cal?year=2026&month=October.
func (s *Server) pickCtrl(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("year") == "" || q.Get("month") == "" {
		s.rootCtrl(w, r)
		return
	}
	http.Redirect(w, r, monthURL(q.Get("year"), q.Get("month")), http.StatusFound)
}

func (s *Server) pageCtrl(w http.ResponseWriter, r *http.Request) {
	v, err := s.buildMonth(chi.URLParam(r, "y"), monthParam(r))
	if err != nil {
		http.Error(w, err.Error(), errorStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := monthTpl.Execute(w, newMonthPage(v)); err != nil {
		log.Printf("[WARN] cannot render month page: %+v", err)
	}
}
