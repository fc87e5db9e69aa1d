// Package controller boots the ignition controller for one verification
// session: it owns every collaborator handle (sensor, display, GPIO lines,
// both databases), runs the session, and guarantees the cleanup contract on
// normal completion and on termination signals alike.
package controller

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/autolock/internal/controller/actuate"
	"github.com/dmitrijs2005/autolock/internal/controller/biometric"
	"github.com/dmitrijs2005/autolock/internal/controller/config"
	"github.com/dmitrijs2005/autolock/internal/controller/display"
	"github.com/dmitrijs2005/autolock/internal/controller/repositories/accesslog"
	"github.com/dmitrijs2005/autolock/internal/controller/repositories/credentials"
	"github.com/dmitrijs2005/autolock/internal/controller/session"
	"github.com/dmitrijs2005/autolock/internal/logging"
	"github.com/dmitrijs2005/autolock/internal/zfm"
)

// App wires the controller. One App serves exactly one physical invocation:
// a new program run is a new session.
type App struct {
	config *config.Config
	logger logging.Logger
}

// NewApp builds the application around the given config.
func NewApp(c *config.Config) *App {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	return &App{config: c, logger: logger}
}

// initSignalHandler cancels the run context on the first termination
// request. Both external termination signals and the operator interrupt
// route to the same cancellation; the cleanup stack then runs on unwind.
func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// cleanupStack collects release steps and runs them once, in reverse
// acquisition order. Safe under repeated invocation.
type cleanupStack struct {
	once sync.Once
	fns  []func()
}

func (c *cleanupStack) add(fn func()) {
	c.fns = append(c.fns, fn)
}

func (c *cleanupStack) run() {
	c.once.Do(func() {
		for i := len(c.fns) - 1; i >= 0; i-- {
			c.fns[i]()
		}
	})
}

// Run executes one verification session and returns the process exit code.
// The cleanup contract — actuator to rest, display cleared, stores and
// sensor released — runs exactly once on every path out of this function.
func (app *App) Run(ctx context.Context) int {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	app.initSignalHandler(cancelFunc)

	app.logger.Info(ctx, "starting ignition controller",
		"sensor_port", app.config.SensorPort,
		"user_db", app.config.UserDBPath,
		"log_db", app.config.LogDBPath,
	)

	cleanup := &cleanupStack{}
	defer cleanup.run()

	userDB, err := initUserDB(ctx, app.config.UserDBPath)
	if err != nil {
		app.logger.Error(ctx, "user db init error", "error", err)
		return 1
	}
	cleanup.add(func() { _ = userDB.Close() })

	logDB, err := initLogDB(ctx, app.config.LogDBPath)
	if err != nil {
		app.logger.Error(ctx, "log db init error", "error", err)
		return 1
	}
	cleanup.add(func() { _ = logDB.Close() })

	port, err := openSensorPort(app.config)
	if err != nil {
		app.logger.Error(ctx, "sensor init error", "error", err)
		return 1
	}
	cleanup.add(func() { _ = port.Close() })

	disp, dispCloser, err := openDisplay(app.config)
	if err != nil {
		app.logger.Error(ctx, "display init error", "error", err)
		return 1
	}
	if dispCloser != nil {
		cleanup.add(func() { _ = dispCloser.Close() })
	}
	cleanup.add(func() { _ = disp.Clear() })

	outs, err := openOutputs(app.config)
	if err != nil {
		app.logger.Error(ctx, "gpio init error", "error", err)
		return 1
	}
	actuator := actuate.New(outs.relay, outs.busy, outs.grant, outs.deny)
	// Rest-state restoration is part of the cleanup contract and runs
	// regardless of what the session was doing when it ended.
	cleanup.add(func() { _ = actuator.Rest() })

	app.welcome(ctx, disp)

	capture := biometric.NewCapture(zfm.New(port), disp, app.logger, app.config.PollInterval)
	sess := session.New(
		capture,
		credentials.NewSQLiteRepository(userDB),
		accesslog.NewSQLiteRepository(logDB),
		actuator,
		disp,
		app.logger,
		session.WithGrantDuration(app.config.GrantDuration),
		session.WithDenyDuration(app.config.DenyDuration),
	)

	outcome, err := sess.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "session aborted", "error", err)
		return 1
	}

	app.logger.Info(ctx, "controller done", "outcome", string(outcome.Kind))
	if ctx.Err() != nil {
		return 1
	}
	return 0
}

// welcome plays the unit's boot banner before the scan prompt.
func (app *App) welcome(ctx context.Context, d display.Display) {
	banner := []struct {
		lines []string
		hold  time.Duration
	}{
		{[]string{"Welcome"}, 2 * time.Second},
		{[]string{"Vehicle Boot"}, 3 * time.Second},
		{[]string{"Processing..."}, 2 * time.Second},
		{[]string{"Please Scan", "Fingerprint", " - - - - "}, 3 * time.Second},
	}

	for _, screen := range banner {
		_ = d.Clear()
		for i, line := range screen.lines {
			_ = d.Text(line, i+1)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(screen.hold):
		}
	}
}
