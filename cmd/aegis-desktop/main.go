// Package main is the entry point for the AEGIS desktop shell.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aegis-privacy/aegis-desktop/internal/config"
	"github.com/aegis-privacy/aegis-desktop/internal/desktop/control"
	"github.com/aegis-privacy/aegis-desktop/internal/desktop/health"
	"github.com/aegis-privacy/aegis-desktop/internal/desktop/lifecycle"
	"github.com/aegis-privacy/aegis-desktop/internal/desktop/supervisor"
	"github.com/aegis-privacy/aegis-desktop/internal/desktop/tray"
	"github.com/aegis-privacy/aegis-desktop/internal/desktop/watcher"
	"github.com/aegis-privacy/aegis-desktop/internal/desktop/window"
	"github.com/aegis-privacy/aegis-desktop/internal/models"
)

func main() {
	os.Exit(run())
}

// run holds the shell's lifetime so that deferred cleanup happens before the
// process exits.
func run() int {
	// Parse flags
	headless := flag.Bool("headless", false, "Run without a system tray (for development)")
	logFile := flag.Bool("log-file", false, "Also append logs to ~/.aegis/logs/desktop.log")
	port := flag.Int("control-port", 0, "Control endpoint port (0 for dynamic allocation)")
	flag.Parse()

	log.SetPrefix("[aegis-desktop] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if *logFile {
		f, err := config.OpenShellLog()
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	// One shell per user: a second one would spawn a second companion.
	running, info, err := config.IsDesktopRunning()
	if err != nil {
		log.Printf("Failed to check desktop status: %v", err)
		return 1
	}
	if running {
		log.Printf("AEGIS desktop already running (PID %d)", info.PID)
		return 1
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Printf("Warning: using default settings: %v", err)
		settings = models.NewSettings()
	}

	app := newApp(settings, *port)
	if *headless {
		log.Println("Running in headless mode (no system tray)")
		return app.runHeadless()
	}
	log.Println("Running with system tray")
	app.runWithTray()
	return 0
}

// app wires the shell's components together.
type app struct {
	settings *models.Settings
	spawner  *supervisor.CommandSpawner
	sup      *supervisor.Supervisor
	probe    *health.Probe
	port     int

	ctrl    *lifecycle.Controller
	srv     *control.Server
	watcher *watcher.Watcher
}

func newApp(settings *models.Settings, port int) *app {
	spawner := supervisor.NewCommandSpawner(settings.Companion)
	return &app{
		settings: settings,
		spawner:  spawner,
		sup:      supervisor.New(spawner),
		probe:    health.NewDefault(),
		port:     port,
	}
}

// runHeadless runs the shell without a tray, blocking until a signal
// dispatches Quit. It returns the exit code Quit requested.
func (a *app) runHeadless() int {
	exitCh := make(chan int, 1)
	a.ctrl = lifecycle.New(a.sup, a.probe, lifecycle.Options{
		Exit:          func(code int) { exitCh <- code },
		StartOnLaunch: a.settings.StartOnLaunch,
	})

	a.startServices()
	a.ctrl.Dispatch(lifecycle.NewEvent(lifecycle.EventLaunch))
	go a.quitOnSignal()

	code := <-exitCh
	a.stopServices()

	fmt.Println("AEGIS desktop stopped")
	return code
}

// runWithTray runs the shell with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func (a *app) runWithTray() {
	a.ctrl = lifecycle.New(a.sup, a.probe, lifecycle.Options{
		Window:        window.NewBrowser(a.settings.DashboardURL),
		Exit:          func(int) { tray.Quit() },
		StartOnLaunch: a.settings.StartOnLaunch,
	})

	onStart := func() {
		a.startServices()
		a.ctrl.Dispatch(lifecycle.NewEvent(lifecycle.EventLaunch))
		go a.quitOnSignal()
	}

	onExit := func() {
		// Quit already stopped the companion; this covers any other way out
		// of the tray loop.
		a.sup.Shutdown()
		a.stopServices()
		fmt.Println("AEGIS desktop stopped")
	}

	// This blocks the main goroutine until tray exits.
	tray.New(a.ctrl, a.ctrl, onStart, onExit).Run()
}

// startServices starts the control endpoint and the settings watcher. Both are
// optional: the shell keeps running without them.
func (a *app) startServices() {
	srv, err := control.New(a.port, a.ctrl.Commands(), a.ctrl)
	if err != nil {
		log.Printf("Warning: control endpoint disabled: %v", err)
	} else {
		a.srv = srv
		go func() {
			if err := srv.Serve(); err != nil {
				log.Printf("Control endpoint error: %v", err)
			}
		}()

		info := models.NewDesktopInfo(control.Host, srv.Port(), os.Getpid())
		if err := config.SaveDesktopInfo(info); err != nil {
			log.Printf("Warning: failed to write desktop info: %v", err)
		}
		log.Printf("Control endpoint on %s:%d (PID %d)", control.Host, srv.Port(), os.Getpid())
	}

	path, err := config.GlobalSettingsFile()
	if err == nil {
		err = config.EnsureGlobalDir()
	}
	if err == nil {
		a.watcher, err = watcher.New(path, func(s *models.Settings) {
			a.spawner.Update(s.Companion)
		})
	}
	if err == nil {
		err = a.watcher.Start()
	}
	if err != nil {
		log.Printf("Warning: settings reload disabled: %v", err)
		if a.watcher != nil {
			a.watcher.Stop()
			a.watcher = nil
		}
	}
}

func (a *app) stopServices() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.srv != nil {
		a.srv.Stop()
	}
	if err := config.RemoveDesktopInfo(); err != nil {
		log.Printf("Failed to remove desktop info: %v", err)
	}
}

// quitOnSignal dispatches Quit on SIGINT/SIGTERM so the companion is stopped
// before the shell exits.
func (a *app) quitOnSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)
	a.ctrl.Dispatch(lifecycle.NewEvent(lifecycle.EventQuit))
}
