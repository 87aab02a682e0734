package main

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli"
	"github.com/xlab/closer"
	"golang.org/x/sync/errgroup"

	"spiritedlamb/internal/capture"
	"spiritedlamb/internal/config"
	"spiritedlamb/internal/ics"
	"spiritedlamb/internal/intention"
	appLog "spiritedlamb/internal/log"
	"spiritedlamb/internal/store"
	"spiritedlamb/internal/web"
)

func newApp() *cli.App {
	var cfg *config.Config

	app := cli.NewApp()
	app.Name = appName
	app.Usage = "Spirited Lamb community site"
	app.Version = appVersion
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config",
			Usage:  "Path to config file",
			Value:  "config.yaml",
			EnvVar: "LAMB_CONFIG",
		},
		cli.StringFlag{
			Name:  "listen",
			Usage: "HTTP listen address (overrides config if set)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
	}
	app.Before = func(c *cli.Context) error {
		loaded, err := loadConfig(c)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "Serve the site (default)",
			Action: func(c *cli.Context) error { return serve(cfg) },
		},
		{
			Name:  "snapshot",
			Usage: "Render the site once and write a PNG preview",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output, o",
					Usage: "PNG output path (defaults to snapshot.output from config)",
				},
			},
			Action: func(c *cli.Context) error {
				out := c.String("output")
				if out == "" {
					out = cfg.Snapshot.Output
				}
				return snapshotOnce(context.Background(), cfg, out)
			},
		},
		{
			Name:      "ics",
			Usage:     "Write one event's calendar export to stdout",
			ArgsUsage: "<event-id>",
			Action: func(c *cli.Context) error {
				id := c.Args().First()
				if id == "" {
					return cli.NewExitError("event id is required", 2)
				}
				data, err := exportEvent(cfg, id, time.Now())
				if err != nil {
					return err
				}
				_, err = c.App.Writer.Write(data)
				return err
			},
		},
	}
	app.Action = func(c *cli.Context) error { return serve(cfg) }
	return app
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.GlobalString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if listen := c.GlobalString("listen"); listen != "" {
		cfg.Listen = listen
	}
	if c.GlobalBool("debug") {
		cfg.LogLevel = "debug"
	}

	if err := appLog.Init(cfg.Production); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))

	appLog.Info("effective config",
		"config_path", path,
		"listen", cfg.Listen,
		"site_url", cfg.SiteURL,
		"timezone", cfg.Timezone,
		"week_start", cfg.WeekStart,
		"intention_model", cfg.Intention.Model,
		"intention_enabled", cfg.Intention.APIKey != "",
		"snapshot_enabled", cfg.Snapshot.Enabled,
	)
	return cfg, nil
}

func newIntention(cfg *config.Config) *intention.Daily {
	g := intention.NewGemini(intention.GeminiConfig{
		APIKey: cfg.Intention.APIKey,
		Model:  cfg.Intention.Model,
		Prompt: cfg.Intention.Prompt,
	})
	if !g.Enabled() {
		appLog.Warn("no API key configured; daily intention will use the fallback text")
	}
	return intention.NewDaily(g, cfg.Location())
}

func newServer(cfg *config.Config, provider intention.Provider) *web.Server {
	return web.NewServer(cfg, store.Seed, provider)
}

// serve runs the site until SIGINT/SIGTERM. The HTTP server and the cron
// scheduler share one errgroup; closer drives shutdown.
func serve(cfg *config.Config) error {
	daily := newIntention(cfg)
	srv := newServer(cfg, daily)

	sched, err := newScheduler(cfg, daily)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(gctx, cfg.Listen)
	})
	g.Go(func() error {
		sched.Start()
		<-gctx.Done()
		<-sched.Stop().Done()
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
	}()

	closer.Bind(func() {
		cancel()
		if err := <-done; err != nil {
			appLog.Error("server stopped with error", err)
		}
		appLog.Info("spiritedlamb exiting")
		appLog.Sync()
	})

	go func() {
		// A server that fails on its own (e.g. port in use) ends the
		// process the same way a signal does.
		<-gctx.Done()
		if ctx.Err() == nil {
			closer.Exit(1)
		}
	}()

	closer.Hold()
	return nil
}

func newScheduler(cfg *config.Config, daily *intention.Daily) (*cron.Cron, error) {
	sched := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithLogger(cron.PrintfLogger(appLog.StdErrorLog())),
	)

	if spec := cfg.Intention.RefreshCron; spec != "" {
		if _, err := sched.AddJob(spec, daily); err != nil {
			return nil, fmt.Errorf("intention refresh schedule %q: %w", spec, err)
		}
		appLog.Info("scheduled daily intention refresh", "cron", spec)
	}

	if cfg.Snapshot.Enabled {
		target := localURL(cfg)
		out := cfg.Snapshot.Output
		_, err := sched.AddFunc(cfg.Snapshot.Cron, func() {
			err := capture.Snapshot(context.Background(), capture.Options{
				URL:    target,
				Output: out,
				Settle: time.Second,
			})
			if err != nil {
				appLog.Error("scheduled snapshot failed", err, "output", out)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("snapshot schedule %q: %w", cfg.Snapshot.Cron, err)
		}
		appLog.Info("scheduled snapshot refresh", "cron", cfg.Snapshot.Cron, "output", out)
	}

	return sched, nil
}

// snapshotOnce starts a private server on a loopback port, captures it and
// shuts it down again.
func snapshotOnce(parent context.Context, cfg *config.Config, out string) error {
	local := *cfg
	local.BasicAuth = nil

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("snapshot listener: %w", err)
	}
	srv := newServer(&local, newIntention(&local))

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ServeListener(gctx, ln)
	})
	g.Go(func() error {
		defer cancel()
		return capture.Snapshot(gctx, capture.Options{
			URL:    "http://" + ln.Addr().String() + "/",
			Output: out,
			Settle: time.Second,
		})
	})
	return g.Wait()
}

func exportEvent(cfg *config.Config, id string, now time.Time) ([]byte, error) {
	st := store.Seed(now.In(cfg.Location()))
	e, err := st.Event(id)
	if err != nil {
		return nil, err
	}
	return ics.Export(e, cfg.SiteURL+"/?open="+url.QueryEscape(e.ID)+"#events"), nil
}

// localURL is the loopback address of the configured listener, with basic
// auth credentials embedded when enabled.
func localURL(cfg *config.Config) string {
	host, port, err := net.SplitHostPort(cfg.Listen)
	if err != nil {
		host, port = "127.0.0.1", "8080"
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	u := url.URL{Scheme: "http", Host: net.JoinHostPort(host, port), Path: "/"}
	if ba := cfg.BasicAuth; ba != nil && ba.Username != "" {
		u.User = url.UserPassword(ba.Username, ba.Password)
	}
	return u.String()
}
