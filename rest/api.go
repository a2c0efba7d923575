package rest

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nvkalinin/days-calendar/calendar"
	"github.com/nvkalinin/days-calendar/export"
	"github.com/nvkalinin/days-calendar/log"
)

type monthRef struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
}

type monthView struct {
	Year   int                 `json:"year"`
	Month  string              `json:"month"`
	Weeks  calendar.Matrix     `json:"weeks"`
	Events []calendar.Resolved `json:"events"`
	Prev   *monthRef           `json:"prev,omitempty"`
	Next   *monthRef           `json:"next,omitempty"`
}

// buildMonth собирает все, что нужно для отображения месяца.
// События, которых в этом месяце нет (пятая пятница и т.п.), не попадают в список.
func (s *Server) buildMonth(year, month string) (*monthView, error) {
	weeks, err := calendar.MonthMatrix(year, month)
	if err != nil {
		return nil, err
	}
	y, _ := calendar.ParseYear(year)
	m, _ := calendar.ParseMonth(month)

	v := &monthView{
		Year:  y,
		Month: m.String(),
		Weeks: weeks,
	}

	events, _ := s.Store.FindMonth(m)
	if v.Events, err = calendar.OccurringEvents(events, v.Month, year); err != nil {
		return nil, err
	}

	if pm, py, err := calendar.PreviousMonth(v.Month, year); err == nil {
		v.Prev = newMonthRef(pm, py)
	}
	if nm, ny, err := calendar.NextMonth(v.Month, year); err == nil {
		v.Next = newMonthRef(nm, ny)
	}
	return v, nil
}

func newMonthRef(month, year string) *monthRef {
	y, _ := strconv.Atoi(year)
	return &monthRef{Year: y, Month: month}
}

func (s *Server) monthCtrl(w http.ResponseWriter, r *http.Request) {
	v, err := s.buildMonth(chi.URLParam(r, "y"), monthParam(r))
	if err != nil {
		sendErrorJson(w, errorStatus(err), err.Error())
		return
	}
	sendJsonResponse(w, v)
}

func (s *Server) eventsCtrl(w http.ResponseWriter, r *http.Request) {
	res, err := calendar.EventsForMonth(s.events(), monthParam(r), chi.URLParam(r, "y"))
	if err != nil {
		sendErrorJson(w, errorStatus(err), err.Error())
		return
	}
	sendJsonResponse(w, res)
}

func (s *Server) nthCtrl(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.NthWeekday(chi.URLParam(r, "y"), monthParam(r), chi.URLParam(r, "wd"), chi.URLParam(r, "occ"))
	if err != nil {
		sendErrorJson(w, errorStatus(err), err.Error())
		return
	}
	sendJsonResponse(w, map[string]string{"date": date.Format("2006-01-02")})
}

func (s *Server) daysCtrl(w http.ResponseWriter, r *http.Request) {
	events, found := s.Store.FindEvents()
	if !found {
		sendErrorJson(w, 404, "no events")
		return
	}
	sendJsonResponse(w, events)
}

// maxICSYears ограничивает диапазон /days.ics: без повторений каждый год дает отдельное событие.
const maxICSYears = 200

// icsCtrl отдает набор в формате iCalendar: /days.ics?from=2020&to=2030&recurring=true.
func (s *Server) icsCtrl(w http.ResponseWriter, r *http.Request) {
	opts := export.DefaultOptions()
	opts.SkipMissing = true

	q := r.URL.Query()
	var err error
	if v := q.Get("from"); v != "" {
		if opts.FromYear, err = strconv.Atoi(v); err != nil {
			sendErrorJson(w, 400, "invalid from")
			return
		}
	}
	if v := q.Get("to"); v != "" {
		if opts.ToYear, err = strconv.Atoi(v); err != nil {
			sendErrorJson(w, 400, "invalid to")
			return
		}
	}
	if v := q.Get("recurring"); v != "" {
		if opts.Recurring, err = strconv.ParseBool(v); err != nil {
			sendErrorJson(w, 400, "invalid recurring")
			return
		}
	}

	if opts.ToYear-opts.FromYear > maxICSYears {
		sendErrorJson(w, 400, fmt.Sprintf("range is too long, max %d years", maxICSYears))
		return
	}

	cal, err := export.Calendar(s.events(), opts)
	if err != nil {
		sendErrorJson(w, 400, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="days.ics"`)
	w.WriteHeader(200)
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		log.Printf("[WARN] cannot write calendar: %+v", err)
	}
}
