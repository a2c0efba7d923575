package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/nvkalinin/days-calendar/calendar"
	"github.com/nvkalinin/days-calendar/log"
	"github.com/nvkalinin/days-calendar/store"
)

type Store interface {
	FindEvents() (store.Events, bool)
	FindMonth(mon time.Month) (store.Events, bool)
}

// Updater пересобирает набор событий из источников (calendar.Processor).
type Updater interface {
	UpdateDataset() error
}

// Backuper пишет снимок хранилища. Есть только у bolt.
type Backuper interface {
	Backup(w io.Writer) error
}

type Server struct {
	Store    Store
	Updater  Updater
	Backuper Backuper // Может быть nil, тогда /api/admin/backup отвечает 501.
	Opts     Opts

	mu      sync.Mutex
	httpSrv *http.Server
}

type Opts struct {
	Listen      string
	LogRequests bool
	AdminPasswd string // Если пустой, /api/admin/* отключены.

	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	RateLimiter bool
	ReqLimit    int
	LimitWindow time.Duration

	Now func() time.Time // Для редиректа на текущий месяц, по умолчанию time.Now.
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Opts.Listen,
		Handler:           s.routes(),
		ReadTimeout:       s.Opts.ReadTimeout,
		ReadHeaderTimeout: s.Opts.ReadHeaderTimeout,
		WriteTimeout:      s.Opts.WriteTimeout,
		IdleTimeout:       s.Opts.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	s.mu.Lock()
	s.httpSrv = srv
	s.mu.Unlock()

	log.Printf("[INFO] rest listening on %s", s.Opts.Listen)
	return srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpSrv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	if s.Opts.LogRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api", func(r chi.Router) {
		if s.Opts.RateLimiter {
			r.Use(httprate.LimitByIP(s.Opts.ReqLimit, s.Opts.LimitWindow))
		}

		r.Get("/days", s.daysCtrl)
		r.Get("/cal/{y}/{m}", s.monthCtrl)
		r.Get("/cal/{y}/{m}/events", s.eventsCtrl)
		r.Get("/cal/{y}/{m}/{wd}/{occ}", s.nthCtrl)

		if s.Opts.AdminPasswd != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.BasicAuth("days-calendar", map[string]string{"admin": s.Opts.AdminPasswd}))
				r.Post("/sync", s.syncCtrl)
				r.Get("/backup", s.backupCtrl)
			})
		}
	})

	r.Group(func(r chi.Router) {
		if s.Opts.RateLimiter {
			r.Use(httprate.LimitByIP(s.Opts.ReqLimit, s.Opts.LimitWindow))
		}
		r.Get("/days.ics", s.icsCtrl)
	})

	r.Get("/", s.rootCtrl)
	r.Get("/cal", s.pickCtrl)
	r.Get("/cal/{y}/{m}", s.pageCtrl)

	return r
}

func (s *Server) now() time.Time {
	if s.Opts.Now != nil {
		return s.Opts.Now()
	}
	return time.Now()
}

// events возвращает весь набор. Пустое хранилище - это пустой набор, а не ошибка.
func (s *Server) events() store.Events {
	events, ok := s.Store.FindEvents()
	if !ok {
		return store.Events{}
	}
	return events
}

// monthParam принимает как название месяца, так и номер 1..12.
func monthParam(r *http.Request) string {
	m := chi.URLParam(r, "m")
	if n, err := strconv.Atoi(m); err == nil && n >= int(time.January) && n <= int(time.December) {
		return time.Month(n).String()
	}
	return m
}

// errorStatus: несуществующий день - 404, любой другой неверный ввод - 400.
func errorStatus(err error) int {
	if errors.Is(err, calendar.ErrOccurrenceNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func sendJsonResponse(w http.ResponseWriter, data interface{}) {
	respJson, err := json.Marshal(data)
	if err != nil {
		log.Printf("[WARN] cannot marshal response data: %+v", err)
		sendErrorJson(w, 500, "cannot marshal response data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if _, err = w.Write(respJson); err != nil {
		log.Printf("[WARN] cannot write response data: %+v", err)
	}
}

func sendErrorJson(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	restErr := &struct {
		Msg string `json:"msg"`
	}{msg}

	errJson, err := json.Marshal(restErr)
	if err != nil {
		log.Printf("[WARN] cannot marshal rest error: %+v", err)
		return
	}

	if _, err = w.Write(errJson); err != nil {
		log.Printf("[WARN] cannot write rest error: %+v", err)
	}
}
