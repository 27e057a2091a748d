package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/nduyhai/nodestatus/internal/api"
	"github.com/nduyhai/nodestatus/internal/clusterstatus"
	"github.com/nduyhai/nodestatus/internal/config"
	"github.com/nduyhai/nodestatus/internal/dashboard"
	"github.com/nduyhai/nodestatus/internal/hostspec"
	"github.com/nduyhai/nodestatus/internal/journal"
	"github.com/nduyhai/nodestatus/internal/metrics"
	"github.com/nduyhai/nodestatus/internal/node"
	"github.com/nduyhai/nodestatus/internal/server"
)

var version = "dev"

func main() {
	fx.New(appOptions()...).Run()
}

func appOptions() []fx.Option {
	return []fx.Option{
		fx.Provide(config.Load),
		fx.Provide(NewLogger),
		fx.WithLogger(func(logger *httplog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.Logger}
		}),
		fx.Provide(NewJournal),
		fx.Provide(metrics.New),
		fx.Provide(NewFetcher),
		fx.Provide(NewPage),
		fx.Provide(NewDashboard),
		fx.Provide(NewAPI),
		fx.Provide(fx.Annotate(NewRoute, fx.As(new(http.Handler)))),
		fx.Provide(server.NewHTTPServer),
		fx.Invoke(server.RegisterRoutes),
	}
}

func NewLogger(cfg *config.Config) (*httplog.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	return httplog.NewLogger("nodestatus", httplog.Options{
		JSON:             cfg.Log.JSON,
		LogLevel:         level,
		Concise:          cfg.Log.Concise,
		RequestHeaders:   true,
		MessageFieldName: "message",
		Tags: map[string]string{
			"version": version,
		},
		QuietDownRoutes: []string{
			"/healthz",
			"/metrics",
		},
		QuietDownPeriod: 10 * time.Second,
	}), nil
}

func NewJournal(lifecycle fx.Lifecycle, cfg *config.Config, logger *httplog.Logger) (journal.Journal, error) {
	var j journal.Journal
	if cfg.Journal.Path == "" {
		j = journal.NewMemory(cfg.Journal.Size)
	} else {
		b, err := journal.OpenBolt(cfg.Journal.Path, cfg.Journal.Size)
		if err != nil {
			return nil, err
		}
		logger.Info("run journal opened", slog.String("path", cfg.Journal.Path))
		j = b
	}

	lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return j.Close()
		},
	})
	return j, nil
}

func NewFetcher(cfg *config.Config, logger *httplog.Logger, collectors *metrics.Collectors, j journal.Journal) *clusterstatus.Fetcher {
	return clusterstatus.NewFetcher(
		clusterstatus.NewCommand(cfg.Command.Path),
		clusterstatus.WithTimeout(cfg.Command.Timeout),
		clusterstatus.Sequential(cfg.Command.Sequential),
		clusterstatus.WithLogger(logger.Logger),
		clusterstatus.OnResult(collectors.ObserveResult),
		clusterstatus.OnSnapshot(collectors.ObserveSnapshot),
		clusterstatus.OnSnapshot(func(s clusterstatus.Snapshot) {
			if err := j.Append(journal.FromSnapshot(s)); err != nil {
				logger.Error("append run journal", slog.String("snapshot_id", s.ID.String()), slog.Any("error", err))
			}
		}),
	)
}

func NewPage(cfg *config.Config) (dashboard.Page, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	spec, err := hostspec.Lookup(ctx, cfg.Dashboard.Host)
	if err != nil {
		return dashboard.Page{}, err
	}
	return dashboard.Page{
		Title:          cfg.Dashboard.Title,
		DashboardURL:   cfg.Dashboard.URL,
		DashboardTitle: spec.DashboardTitle(),
	}, nil
}

func NewDashboard(f *clusterstatus.Fetcher, page dashboard.Page, logger *httplog.Logger) *dashboard.Dashboard {
	return dashboard.NewDashboard(f, page, logger)
}

func NewAPI(f *clusterstatus.Fetcher, j journal.Journal, logger *httplog.Logger) *api.API {
	return api.NewAPI(f, j, logger)
}

// requestTimeout leaves room for every script run plus rendering.
func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.Command.Timeout == 0 {
		return 0
	}
	runs := time.Duration(1)
	if cfg.Command.Sequential {
		runs = time.Duration(len(node.Queries))
	}
	return runs*cfg.Command.Timeout + 10*time.Second
}

func NewRoute(
	cfg *config.Config,
	logger *httplog.Logger,
	dash *dashboard.Dashboard,
	statusAPI *api.API,
	collectors *metrics.Collectors,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if timeout := requestTimeout(cfg); timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", collectors.Handler())
	r.Get("/", dash.IndexHandler)
	r.Mount("/api/v1", statusAPI.Routes())

	return r
}
