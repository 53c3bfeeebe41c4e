package main

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/handbook"
	"github.com/fwojciec/handbook/csv"
	hbhttp "github.com/fwojciec/handbook/http"
	"github.com/fwojciec/handbook/memory"
	"github.com/fwojciec/handbook/report"
	"github.com/fwojciec/handbook/sendgrid"
	hbslog "github.com/fwojciec/handbook/slog"
	"github.com/fwojciec/handbook/toml"
	"golang.org/x/sync/errgroup"
)

//go:embed home.toml
var defaultHome []byte

// App is a fully wired server and the catalog behind it.
type App struct {
	Server  *hbhttp.Server
	Catalog handbook.CatalogService
	Logger  *slog.Logger
}

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	app, err := c.Build(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", handbook.ErrorMessage(err))
		return err
	}

	ctx, stop := signal.NotifyContext(deps.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	// Load eagerly so a broken catalog shows up in the logs at startup.
	// The page still renders and reports the problem inline.
	_, _ = app.Catalog.Entries(ctx)

	if err := app.Server.Open(); err != nil {
		return fmt.Errorf("failed to listen on %q: %w", c.Addr, err)
	}
	app.Logger.Info("serving", "url", app.Server.URL(), "catalog", c.Catalog)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(app.Server.Serve)
	g.Go(func() error {
		<-ctx.Done()
		return app.Server.Close()
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-hup:
				_, _ = app.Catalog.Reload(ctx)
			}
		}
	})
	return g.Wait()
}

// Build wires the services for the serve command without binding a listener.
func (c *ServeCmd) Build(deps *Dependencies) (*App, error) {
	logger, err := NewLogger(deps.Stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	lookupEnv := deps.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	mailConfig, err := toml.LoadMailConfig(c.Secrets, lookupEnv)
	if err != nil {
		return nil, err
	}
	if !mailConfig.Complete() {
		logger.Warn("reporting disabled: mail settings incomplete", "secrets", c.Secrets)
	}

	home, err := c.loadHome()
	if err != nil {
		return nil, err
	}

	catalog := hbslog.NewLoggingCatalogService(csv.NewCatalog(c.Catalog), logger)
	dispatcher := report.NewDispatcher(sendgrid.NewMailer(mailConfig.APIKey), mailConfig, c.AppName)

	s := hbhttp.NewServer()
	s.Addr = c.Addr
	s.AppName = c.AppName
	s.Logger = logger
	s.CatalogService = catalog
	s.SessionService = memory.NewSessionService()
	s.ReportService = hbslog.NewLoggingReportService(dispatcher, logger)
	s.Renderer = &handbook.Renderer{ViewerURL: c.ViewerURL, Home: home}

	return &App{Server: s, Catalog: catalog, Logger: logger}, nil
}

func (c *ServeCmd) loadHome() (*handbook.Home, error) {
	if c.Home != "" {
		return toml.LoadHome(c.Home)
	}
	return toml.ParseHome(defaultHome)
}

// NewLogger returns a logger writing to w in the given format at the given
// level.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, handbook.Errorf(handbook.EINVALID, "invalid log level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, handbook.Errorf(handbook.EINVALID, "invalid log format %q", format)
	}
}
