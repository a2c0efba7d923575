package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nvkalinin/days-calendar/calendar"
	"github.com/nvkalinin/days-calendar/log"
	"github.com/nvkalinin/days-calendar/rest"
	"github.com/nvkalinin/days-calendar/source"
	"github.com/nvkalinin/days-calendar/source/parser"
	"github.com/nvkalinin/days-calendar/store"
	"github.com/nvkalinin/days-calendar/store/engine"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/sync/errgroup"
)

type EngineType string

var (
	EngineMemory EngineType = "memory"
	EngineBolt   EngineType = "bolt"
)

const defaultUserAgent = "Go-http-client"

type Server struct {
	SyncCron        string `long:"sync-cron" env:"SYNC_CRON" value-name:"spec" description:"Расписание синхронизации набора памятных дней со всеми источниками в формате cron (\"0 3 * * *\", \"@daily\"). Если не указано, то автоматическое обновление отключено."`
	SkipSyncOnStart bool   `long:"skip-sync-on-start" env:"SKIP_SYNC_ON_START" description:"Не синхронизировать набор при запуске. Имеет смысл с хранилищем bolt, где набор уже сохранен."`

	Web struct {
		Listen      string `long:"listen" env:"LISTEN" value-name:"addr" default:"0.0.0.0:80" description:"Сетевой адрес для веб-сервера."`
		AccessLog   bool   `long:"access-log" env:"ACCESS_LOG" description:"Логировать все HTTP-запросы."`
		AdminPasswd string `long:"admin-passwd" env:"ADMIN_PASSWD" description:"Пароль пользователя admin для вызова /api/admin/*."`

		ReadTimeout       time.Duration `long:"read-timeout" env:"READ_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadTimeout"`
		ReadHeaderTimeout time.Duration `long:"read-header-timeout" env:"READ_HEADER_TIMEOUT" value-name:"duration" default:"5s" description:"http.Server ReadHeaderTimeout"`
		IdleTimeout       time.Duration `long:"idle-timeout" env:"IDLE_TIMEOUT" value-name:"duration" default:"30s" description:"http.Server IdleTimeout"`

		// Запросы к /admin могут выполняться долго, поэтому WriteTimout должен быть достаточно большим.
		WriteTimeout time.Duration `long:"write-timeout" env:"WRITE_TIMEOUT" value-name:"duration" default:"60s" description:"http.Server WriteTimeout"`

		RateLimiter struct {
			ReqLimit    int           `long:"reqs" env:"REQS" value-name:"num" default:"100" description:"Количество запросов с одного IP. Если 0 — rate limiter отключен."`
			LimitWindow time.Duration `long:"window" env:"WINDOW" value-name:"duration" default:"1s" description:"Интервал времени, за который разврешено указанное кол-во запросов."`
		} `group:"Rate Limiter" namespace:"ratelim" env-namespace:"RATE_LIM"`
	} `group:"Web" namespace:"web" env-namespace:"WEB"`

	Store struct {
		Engine EngineType `long:"engine" env:"ENGINE" value-name:"type" choice:"memory" choice:"bolt" default:"bolt" description:"Тип хранилища для набора памятных дней."`

		Bolt struct {
			File string `long:"file" env:"FILE" value-name:"path" default:"days.bolt" description:"Путь к файлу БД."`
		} `group:"Настройки хранилища bolt" namespace:"bolt" env-namespace:"BOLT"`
	} `group:"Хранилище" namespace:"store" env-namespace:"STORE"`

	Source struct {
		File string `long:"file" env:"FILE" value-name:"days.json" default:"days.json" description:"Путь к JSON-файлу с базовым набором памятных дней. Пустая строка: не использовать."`

		Remote struct {
			URL       string        `long:"url" env:"URL" description:"URL, по которому лежит набор в формате days.json. Если не указан, источник отключен."`
			Timeout   time.Duration `long:"timeout" env:"TIMEOUT" value-name:"duration" default:"30s" description:"Максимальное время выполнения запроса."`
			UserAgent string        `long:"user-agent" env:"USER_AGENT" description:"Значение заголовка User-Agent."`
		} `group:"Удаленный days.json" namespace:"remote" env-namespace:"REMOTE"`

		Table struct {
			URL       string        `long:"url" env:"URL" description:"URL страницы с таблицей памятных дней. Если не указан, парсер отключен."`
			Selector  string        `long:"selector" env:"SELECTOR" default:"table.days" description:"CSS-селектор таблицы."`
			Timeout   time.Duration `long:"timeout" env:"TIMEOUT" value-name:"duration" default:"30s" description:"Максимальное время выполнения запроса к сайту."`
			UserAgent string        `long:"user-agent" env:"USER_AGENT" description:"Значение заголовка User-Agent во всех запросах к сайту."`
		} `group:"Парсер HTML-таблицы" namespace:"table" env-namespace:"TABLE"`

		Override string `long:"override" env:"OVERRIDE" value-name:"file.yml" description:"Путь к файлу с локальными изменениями набора. Применяется последним."`
	} `group:"Источники данных" namespace:"source" env-namespace:"SOURCE"`
}

func (s *Server) Execute(args []string) error {
	a, err := s.makeApp()
	if err != nil {
		return err
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		a.shutdown()
	}()

	a.run()
	a.wait()
	return nil
}

type app struct {
	srv         *rest.Server
	proc        *calendar.Processor
	store       Store
	autoSync    bool
	syncOnStart bool
	syncFinish  chan struct{}

	stopOnce sync.Once
	stopped  chan struct{}
}

func (s *Server) makeApp() (*app, error) {
	a := &app{
		syncOnStart: !s.SkipSyncOnStart,
		syncFinish:  make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	src, err := s.makeSources()
	if err != nil {
		return nil, err
	}

	opts := calendar.ProcOpts{Src: src}
	if s.SyncCron != "" {
		opts.Schedule, err = calendar.ParseSchedule(s.SyncCron)
		if err != nil {
			return nil, fmt.Errorf("sync cron: %w", err)
		}
		a.autoSync = true
	}

	st, err := s.makeStore()
	if err != nil {
		return nil, err
	}
	a.store = st
	opts.Store = st

	a.proc = calendar.NewProcessor(opts)

	a.srv = &rest.Server{
		Store:   st,
		Updater: a.proc,
		Opts: rest.Opts{
			Listen:      s.Web.Listen,
			LogRequests: s.Web.AccessLog,
			AdminPasswd: s.Web.AdminPasswd,

			ReadTimeout:       s.Web.ReadTimeout,
			ReadHeaderTimeout: s.Web.ReadHeaderTimeout,
			WriteTimeout:      s.Web.WriteTimeout,
			IdleTimeout:       s.Web.IdleTimeout,

			RateLimiter: s.Web.RateLimiter.ReqLimit > 0,
			ReqLimit:    s.Web.RateLimiter.ReqLimit,
			LimitWindow: s.Web.RateLimiter.LimitWindow,
		},
	}
	if b, ok := st.(rest.Backuper); ok {
		a.srv.Backuper = b
	}

	return a, nil
}

type Store interface {
	FindEvents() (store.Events, bool)
	FindMonth(mon time.Month) (store.Events, bool)
	PutEvents(events store.Events) error
}

func (s *Server) makeStore() (Store, error) {
	switch s.Store.Engine {
	case EngineMemory:
		return engine.NewMemory(), nil
	case EngineBolt:
		return engine.NewBolt(s.Store.Bolt.File)
	default:
		return nil, fmt.Errorf("unknown store engine %s", s.Store.Engine)
	}
}

// makeSources собирает источники в порядке приоритета: каждый следующий переопределяет предыдущие.
func (s *Server) makeSources() ([]calendar.Source, error) {
	src := make([]calendar.Source, 0, 4)

	if s.Source.File != "" {
		src = append(src, &source.File{Path: s.Source.File})
	}

	if s.Source.Remote.URL != "" {
		src = append(src, &source.Remote{
			Client:    &http.Client{Timeout: s.Source.Remote.Timeout},
			URL:       s.Source.Remote.URL,
			UserAgent: userAgent(s.Source.Remote.UserAgent),
		})
	}

	if s.Source.Table.URL != "" {
		jar, err := cookiejar.New(&cookiejar.Options{
			PublicSuffixList: publicsuffix.List,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot create cookie jar: %w", err)
		}

		src = append(src, &parser.Table{
			Client: &http.Client{
				Timeout: s.Source.Table.Timeout,
				Jar:     jar,
			},
			URL:       s.Source.Table.URL,
			UserAgent: userAgent(s.Source.Table.UserAgent),
			Selector:  s.Source.Table.Selector,
		})
	}

	if s.Source.Override != "" {
		src = append(src, &source.Override{Path: s.Source.Override})
	}

	if len(src) == 0 {
		return nil, fmt.Errorf("no sources configured")
	}
	return src, nil
}

func userAgent(ua string) string {
	if ua == "" {
		return defaultUserAgent
	}
	return ua
}

func (a *app) run() {
	g, _ := errgroup.WithContext(context.Background())

	if a.autoSync {
		g.Go(func() error {
			a.proc.RunUpdates()
			return nil
		})
	}

	g.Go(func() error {
		syncOnRun(a.proc, a.syncOnStart, a.syncFinish)
		return nil
	})

	g.Go(func() error {
		if err := a.srv.Run(context.Background()); err != nil && err != http.ErrServerClosed {
			log.Printf("[ERROR] startup: %v", err)
			return err
		}
		return nil
	})

	if g.Wait() != nil {
		a.shutdown()
	}
}

func (a *app) shutdown() {
	a.stopOnce.Do(func() {
		log.Printf("[INFO] shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		g, _ := errgroup.WithContext(ctx)

		if a.autoSync {
			g.Go(func() error {
				return a.proc.Shutdown(ctx)
			})
		}
		g.Go(func() error {
			return a.srv.Shutdown(ctx)
		})
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return fmt.Errorf("sync on run: %w", ctx.Err())
			case <-a.syncFinish:
				return nil
			}
		})

		if err := g.Wait(); err != nil {
			log.Printf("[ERROR] app shutdown: %v", err)
		}

		if c, ok := a.store.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.Printf("[WARN] app shutdown: %v", err)
			}
		}
		close(a.stopped)
	})
}

func (a *app) wait() {
	<-a.stopped
}

func syncOnRun(proc *calendar.Processor, enabled bool, finished chan<- struct{}) {
	defer close(finished)
	if !enabled {
		return
	}

	if err := proc.UpdateDataset(); err != nil {
		log.Printf("[WARN] sync on run: %+v", err)
	}
}
