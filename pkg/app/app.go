// Package app wires together configuration, logging, and a simulator
// engine into the runnable CLI application, adapted from lazydocker's
// pkg/app.App (there, Config+Log+OSCommand+DockerCommand+Gui; here,
// Config+Log+Engine).
package app

import (
	"io"
	"strconv"
	"strings"

	"simcore/pkg/config"
	"simcore/pkg/event"
	"simcore/pkg/scheduler"
	"simcore/pkg/simcli"
	"simcore/pkg/simlog"
	"simcore/pkg/simtime"
	"simcore/pkg/simulator"
)

// App bootstraps the configured engine and drives one demo scenario run,
// returning an event-trace table and a run summary for main to print.
type App struct {
	closers []io.Closer

	Config *config.AppConfig
	Log    *simlog.Logger
	Engine *simulator.Engine
}

// NewApp builds an App from cfg: resolves the time resolution and
// scheduler kind named in cfg.UserConfig, constructs the logger, and
// builds an Engine over the selected scheduler.
func NewApp(cfg *config.AppConfig) (*App, error) {
	app := &App{
		closers: []io.Closer{},
		Config:  cfg,
	}

	app.Log = simlog.New(simlog.Options{
		Debug:     cfg.UserConfig.Debug,
		ConfigDir: cfg.ConfigDir,
		Version:   cfg.Version,
		Commit:    cfg.Commit,
		BuildDate: cfg.BuildDate,
	})

	if unit, ok := simtime.ParseUnit(cfg.UserConfig.TimeResolution); ok {
		simtime.SetResolution(unit)
	}

	sched, err := scheduler.New(scheduler.Kind(cfg.UserConfig.Scheduler), cfg.UserConfig.CalendarReverse)
	if err != nil {
		return app, err
	}
	app.Engine = simulator.New(sched, app.Log)

	return app, nil
}

// Close releases any resources registered during NewApp.
func (app *App) Close() error {
	for _, closer := range app.closers {
		if err := closer.Close(); err != nil {
			return err
		}
	}
	return nil
}

type errorMapping struct {
	originalError string
	newError      string
}

// KnownError maps a handful of infrastructure errors (bad config
// directory, unwritable config file) to a friendlier one-liner, the same
// role lazydocker's KnownError plays for its Docker-socket error.
func (app *App) KnownError(err error) (string, bool) {
	message := err.Error()
	mappings := []errorMapping{
		{
			originalError: "permission denied",
			newError:      "could not access the config directory or file; check its permissions",
		},
	}
	for _, m := range mappings {
		if strings.Contains(message, m.originalError) {
			return m.newError, true
		}
	}
	return "", false
}

// DemoScenario schedules a small, deterministic sequence of events
// exercising same-timestamp FIFO ordering and a destroy-phase event, runs
// the engine to completion, and returns a rendered trace table plus run
// summary, for `--demo` CLI output.
func (app *App) DemoScenario() (table string, summary string) {
	var rows []simcli.TraceRow
	record := func(ctx uint32, desc string) func() {
		return func() {
			rows = append(rows, simcli.TraceRow{
				Timestamp:   app.Engine.Now().String(),
				Context:     formatContext(ctx),
				UID:         "",
				Description: desc,
			})
		}
	}

	app.Engine.ScheduleWithContext(0, 10, event.MakeEvent(record(0, "link up")))
	app.Engine.ScheduleWithContext(0, 10, event.MakeEvent(record(0, "first packet queued")))
	app.Engine.ScheduleWithContext(1, 25, event.MakeEvent(record(1, "retransmit timer")))
	app.Engine.ScheduleDestroy(event.MakeEvent(record(simulator.NoContext, "flush stats")))

	app.Engine.Run()
	app.Engine.Destroy()

	table, dropped := simcli.RenderTraceTable(rows, app.Config.UserConfig.Trace.MaxRows, app.Config.UserConfig.Trace.Color)
	if dropped > 0 {
		table += "\n... and " + strconv.Itoa(dropped) + " more rows"
	}
	summary = simcli.SummaryLine(app.Engine.EventCount(), app.Engine.UnscheduledEvents(), app.Engine.Now().String(), app.Config.UserConfig.Trace.Color)
	return table, summary
}

func formatContext(ctx uint32) string {
	if ctx == simulator.NoContext {
		return "-"
	}
	return strconv.Itoa(int(ctx))
}
